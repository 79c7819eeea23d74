package plinksplit

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// SplitPrefix separates a PLINK fileset prefix into the directory that holds
// it and the fileset's base name. A prefix without a directory lives in ".".
// Google Storage prefixes keep their gs:// scheme intact.
func SplitPrefix(prefix string) (dir, base string) {
	if IsGoogleStoragePath(prefix) {
		i := strings.LastIndex(prefix, "/")
		if i < len("gs://") {
			return prefix, ""
		}
		return prefix[:i], prefix[i+1:]
	}

	dir = filepath.Dir(prefix)
	base = filepath.Base(prefix)

	return dir, base
}

// JoinPath joins a directory produced by SplitPrefix with a file name.
func JoinPath(dir, name string) string {
	if IsGoogleStoragePath(dir) {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}

	return filepath.Join(dir, name)
}
