package plinksplit

// Map columns in the FAM file to their positions
const (
	FamilyID int = iota
	IndividualID
	PaternalID
	MaternalID
	Sex
	Phenotype
)

// Sample identifies one genotyped individual. The pair as a whole is the
// sample's identity; tokens are kept exactly as they appear in the file.
type Sample struct {
	FamilyID     string
	IndividualID string
}

func (s Sample) String() string {
	return s.FamilyID + " " + s.IndividualID
}

type FAMRow struct {
	Sample
	PaternalID string // Empty if the line was truncated after the IID
	MaternalID string
	Sex        string
	Phenotype  string
}
