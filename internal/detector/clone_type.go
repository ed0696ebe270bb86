package detector

import "github.com/simtree-go/simtree/internal/constants"

// CloneType is an informative similarity-band label attached to entries for
// reporting. It never participates in grouping or ranking.
type CloneType int

const (
	CloneTypeNone CloneType = iota
	CloneType1
	CloneType2
	CloneType3
	CloneType4
)

func (ct CloneType) String() string {
	if name, ok := constants.CloneTypeNames[int(ct)]; ok {
		return name
	}
	return "Unclassified"
}

// ClassifyCloneType buckets a similarity score into one of the standard
// clone-type bands. It is purely descriptive.
func ClassifyCloneType(similarity float64) CloneType {
	switch {
	case similarity >= constants.DefaultType1CloneThreshold:
		return CloneType1
	case similarity >= constants.DefaultType2CloneThreshold:
		return CloneType2
	case similarity >= constants.DefaultType3CloneThreshold:
		return CloneType3
	case similarity >= constants.DefaultType4CloneThreshold:
		return CloneType4
	default:
		return CloneTypeNone
	}
}
