// Package detector assembles duplicate groups from a corpus of extracted
// methods (C7): eligibility filtering, fingerprint-gated candidate
// generation, parallel similarity scoring, and deterministic, impact-ranked
// group assembly.
package detector

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/simtree-go/simtree/internal/apted"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/scorer"
)

// Options configures eligibility, scoring, and concurrency for one
// detection run.
type Options struct {
	Threshold   float64
	MinLines    int
	MaxLines    int
	MinTokens   int
	NamePattern *regexp.Regexp

	APTEDCosts    apted.Costs
	ScorerOptions scorer.Options

	Concurrency int

	// Strategy assembles surviving pairs into groups. Nil selects the
	// spec-canonical representative/impact algorithm.
	Strategy GroupingStrategy

	// Candidates generates the candidate pair list ahead of scoring. Nil
	// selects the spec.md §4.7 fingerprint-admission path.
	Candidates CandidateGenerator
}

// DefaultOptions mirrors the detector's documented defaults.
func DefaultOptions() Options {
	return Options{
		Threshold:     0.87,
		MinLines:      5,
		MaxLines:      0,
		MinTokens:     0,
		APTEDCosts:    apted.DefaultCosts(),
		ScorerOptions: scorer.DefaultOptions(),
		Concurrency:   4,
	}
}

// Entry is one duplicate of a group's representative method.
type Entry struct {
	Method     *extract.Method
	Similarity float64
	Impact     float64
}

// Group is a representative method plus its ranked duplicate entries.
type Group struct {
	Representative *extract.Method
	Entries        []*Entry
	TotalImpact    float64
}

type pair struct {
	i, j       int
	similarity float64
}

// Detect runs the full C7 pipeline over methods and returns impact-ranked
// duplicate groups.
func Detect(methods []*extract.Method, opts Options) ([]*Group, error) {
	eligible := filterEligible(methods, opts)
	if len(eligible) < 2 {
		return nil, nil
	}

	generator := opts.Candidates
	if generator == nil {
		generator = bloomCandidateGenerator{}
	}
	candidates := generator.Generate(eligible, opts.Threshold)
	surviving, err := scoreCandidates(eligible, candidates, opts)
	if err != nil {
		return nil, fmt.Errorf("scoring candidate pairs: %w", err)
	}

	strategy := opts.Strategy
	if strategy == nil {
		strategy = impactStrategy{}
	}
	return strategy.Assemble(eligible, surviving), nil
}

func filterEligible(methods []*extract.Method, opts Options) []*extract.Method {
	var out []*extract.Method
	for _, m := range methods {
		if m.LineCount < opts.MinLines {
			continue
		}
		if opts.MaxLines > 0 && m.LineCount > opts.MaxLines {
			continue
		}
		if m.TokenCount < opts.MinTokens {
			continue
		}
		if opts.NamePattern != nil && !opts.NamePattern.MatchString(m.FullName) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func generateCandidates(methods []*extract.Method, threshold float64) []pair {
	tau := 0.5 * threshold
	var out []pair
	for i := 0; i < len(methods); i++ {
		for j := i + 1; j < len(methods); j++ {
			if fingerprint.MightBeSimilar(methods[i].Fingerprint, methods[j].Fingerprint, tau) {
				out = append(out, pair{i: i, j: j})
			}
		}
	}
	return out
}

// scoreCandidates computes similarity for every candidate pair concurrently,
// bounded by opts.Concurrency, and returns the pairs meeting the threshold.
// Results are written into a pre-sized slice indexed by candidate position,
// so the outcome is independent of worker interleaving.
func scoreCandidates(methods []*extract.Method, candidates []pair, opts Options) ([]pair, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	scored := make([]pair, len(candidates))
	ok := make([]bool, len(candidates))

	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	errCh := make(chan error, len(candidates))

	for idx, c := range candidates {
		wg.Add(1)
		go func(idx int, c pair) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			defer func() {
				if r := recover(); r != nil {
					errCh <- fmt.Errorf("panic scoring pair (%d,%d): %v", c.i, c.j, r)
				}
			}()

			sim := scorePair(methods[c.i], methods[c.j], opts)
			if sim >= opts.Threshold {
				scored[idx] = pair{i: c.i, j: c.j, similarity: sim}
				ok[idx] = true
			}
		}(idx, c)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		return nil, err
	}

	var out []pair
	for i, keep := range ok {
		if keep {
			out = append(out, scored[i])
		}
	}
	return out, nil
}

// Similarity scores one pair of methods under opts' APTED costs and scorer
// options, without eligibility filtering or thresholding.
func Similarity(a, b *extract.Method, opts Options) float64 {
	return scorePair(a, b, opts)
}

func scorePair(a, b *extract.Method, opts Options) float64 {
	d := apted.Distance(a.Tree, b.Tree, opts.APTEDCosts)
	return scorer.Score(a.TokenCount, b.TokenCount, a.LineCount, b.LineCount, d, a.Features(), b.Features(), opts.ScorerOptions)
}

// Impact is the refactoring-impact weight of one duplicate relationship:
// the sum of both methods' line counts, scaled by their similarity.
func Impact(a, b *extract.Method, similarity float64) float64 {
	return float64(a.LineCount+b.LineCount) * similarity
}

// assembleGroups runs the deterministic, index-ordered group assembly
// algorithm: group surviving pairs by representative (smaller index),
// process representatives in ascending order, and within each group append
// unprocessed duplicates in ascending index order. This is impactStrategy's
// implementation, exposed standalone for direct testing.
func assembleGroups(methods []*extract.Method, surviving []pair) []*Group {
	byRep := make(map[int][]pair)
	for _, p := range surviving {
		byRep[p.i] = append(byRep[p.i], p)
	}
	for _, ps := range byRep {
		sort.Slice(ps, func(a, b int) bool { return ps[a].j < ps[b].j })
	}

	processed := make([]bool, len(methods))
	var groups []*Group

	for i := 0; i < len(methods); i++ {
		if processed[i] {
			continue
		}
		ps, ok := byRep[i]
		if !ok {
			continue
		}

		group := &Group{Representative: methods[i]}
		for _, p := range ps {
			if processed[p.j] {
				continue
			}
			impact := Impact(methods[i], methods[p.j], p.similarity)
			group.Entries = append(group.Entries, &Entry{
				Method:     methods[p.j],
				Similarity: p.similarity,
				Impact:     impact,
			})
			group.TotalImpact += impact
			processed[p.j] = true
		}

		if len(group.Entries) > 0 {
			processed[i] = true
			sort.Slice(group.Entries, func(a, b int) bool {
				return group.Entries[a].Impact > group.Entries[b].Impact
			})
			groups = append(groups, group)
		}
	}

	sort.Slice(groups, func(a, b int) bool { return groups[a].TotalImpact > groups[b].TotalImpact })
	return groups
}
