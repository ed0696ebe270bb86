package detector

import (
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/internal/fingerprint"
)

// CandidateGenerator produces the candidate pair list consumed by parallel
// scoring. bloomCandidateGenerator (the default, spec.md §4.7 algorithm) is
// always correct; lshCandidateGenerator trades a small amount of recall for
// sub-quadratic candidate generation on very large corpora.
type CandidateGenerator interface {
	Generate(methods []*extract.Method, threshold float64) []pair
}

type bloomCandidateGenerator struct{}

func (bloomCandidateGenerator) Generate(methods []*extract.Method, threshold float64) []pair {
	return generateCandidates(methods, threshold)
}

// DefaultCandidateGenerator returns the spec.md §4.7 fingerprint-admission
// candidate path.
func DefaultCandidateGenerator() CandidateGenerator { return bloomCandidateGenerator{} }

// LSHCandidateGenerator returns the opt-in MinHash/LSH candidate path for
// very large corpora, selected via performance.use_lsh / --fast.
func LSHCandidateGenerator() CandidateGenerator { return lshCandidateGenerator{} }

const (
	lshBands     = 8
	lshRowsPerBand = 4
	lshHashCount = lshBands * lshRowsPerBand
)

// lshCandidateGenerator buckets methods by banded MinHash signatures over
// their kind histograms and only compares methods sharing at least one
// band, instead of every pair. It is opt-in (performance.use_lsh /
// --fast) and never the default candidate path.
type lshCandidateGenerator struct{}

func (lshCandidateGenerator) Generate(methods []*extract.Method, threshold float64) []pair {
	signatures := make([][]uint32, len(methods))
	for i, m := range methods {
		signatures[i] = minHashSignature(m.Fingerprint)
	}

	seen := make(map[[2]int]bool)
	var out []pair
	for band := 0; band < lshBands; band++ {
		buckets := make(map[uint64][]int)
		for i, sig := range signatures {
			key := bandKey(sig, band)
			buckets[key] = append(buckets[key], i)
		}
		for _, members := range buckets {
			for a := 0; a < len(members); a++ {
				for b := a + 1; b < len(members); b++ {
					i, j := members[a], members[b]
					if i > j {
						i, j = j, i
					}
					key := [2]int{i, j}
					if seen[key] {
						continue
					}
					seen[key] = true
					out = append(out, pair{i: i, j: j})
				}
			}
		}
	}
	return out
}

func bandKey(sig []uint32, band int) uint64 {
	var key uint64
	start := band * lshRowsPerBand
	for k := 0; k < lshRowsPerBand; k++ {
		key = key*1000003 + uint64(sig[start+k])
	}
	return key
}

// minHashSignature derives a fixed-length MinHash signature from a
// fingerprint's kind histogram: for each of lshHashCount hash functions, the
// minimum hash value over every (kind, occurrence) pair present.
func minHashSignature(fp *fingerprint.Fingerprint) []uint32 {
	sig := make([]uint32, lshHashCount)
	for i := range sig {
		sig[i] = ^uint32(0)
	}
	if fp == nil {
		return sig
	}
	for kind, count := range fp.Histogram {
		for occurrence := 0; occurrence < count; occurrence++ {
			for h := 0; h < lshHashCount; h++ {
				v := minHash(kind, occurrence, h)
				if v < sig[h] {
					sig[h] = v
				}
			}
		}
	}
	return sig
}

func minHash(kind string, occurrence, seed int) uint32 {
	h := uint32(2166136261) ^ uint32(seed)*16777619
	for i := 0; i < len(kind); i++ {
		h ^= uint32(kind[i])
		h *= 16777619
	}
	h ^= uint32(occurrence)
	h *= 16777619
	return h
}
