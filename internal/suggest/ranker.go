// internal/suggest/ranker.go
//
// Orders the resolution suggestions fetched for one conflict and tracks
// which one the operator has picked. Recommended suggestions always sort
// ahead of the rest; within each group ordering is by confidence,
// descending, and otherwise stable.

package suggest

import (
	"sort"

	"github.com/medroster/conflictdeck/internal/conflict"
)

// ImpactBucket grades a suggestion's impact score for display.
type ImpactBucket string

const (
	ImpactLow    ImpactBucket = "low"
	ImpactMedium ImpactBucket = "medium"
	ImpactHigh   ImpactBucket = "high"
)

// ConfidenceBucket grades a suggestion's confidence for display.
type ConfidenceBucket string

const (
	ConfidenceLow    ConfidenceBucket = "low"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceHigh   ConfidenceBucket = "high"
)

// BucketImpact applies the fixed display thresholds: below 30 is low,
// below 60 is medium, otherwise high. Lower impact is better.
func BucketImpact(score int) ImpactBucket {
	switch {
	case score < 30:
		return ImpactLow
	case score < 60:
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// BucketConfidence applies the fixed display thresholds: 80 and above is
// high, 50 and above is medium, otherwise low.
func BucketConfidence(score int) ConfidenceBucket {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Rank returns a new slice ordered recommended-first, then by descending
// confidence within each group. The input is not modified and ties keep
// their original order.
func Rank(suggestions []conflict.ResolutionSuggestion) []conflict.ResolutionSuggestion {
	ranked := append([]conflict.ResolutionSuggestion(nil), suggestions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Recommended != ranked[j].Recommended {
			return ranked[i].Recommended
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})
	return ranked
}

// Ranker owns the ranked suggestion list for one conflict plus the single
// selected candidate.
type Ranker struct {
	conflictID string
	ranked     []conflict.ResolutionSuggestion
	selectedID string
}

// NewRanker ranks the unordered suggestion list fetched for a conflict.
func NewRanker(conflictID string, suggestions []conflict.ResolutionSuggestion) *Ranker {
	return &Ranker{conflictID: conflictID, ranked: Rank(suggestions)}
}

// ConflictID returns the conflict the suggestions belong to.
func (r *Ranker) ConflictID() string {
	return r.conflictID
}

// Suggestions returns the ranked list.
func (r *Ranker) Suggestions() []conflict.ResolutionSuggestion {
	return append([]conflict.ResolutionSuggestion(nil), r.ranked...)
}

// Len returns how many suggestions are available.
func (r *Ranker) Len() int {
	return len(r.ranked)
}

// Select marks one suggestion as the candidate, replacing any prior pick.
// Selecting an id that is not in the list clears the selection.
func (r *Ranker) Select(id string) {
	for _, s := range r.ranked {
		if s.ID == id {
			r.selectedID = id
			return
		}
	}
	r.selectedID = ""
}

// Selected returns the chosen suggestion, if any. Applying with no
// selection is a no-op upstream: the apply affordance stays disabled.
func (r *Ranker) Selected() (conflict.ResolutionSuggestion, bool) {
	if r.selectedID == "" {
		return conflict.ResolutionSuggestion{}, false
	}
	for _, s := range r.ranked {
		if s.ID == r.selectedID {
			return s, true
		}
	}
	return conflict.ResolutionSuggestion{}, false
}

// HasSelection reports whether a candidate is picked.
func (r *Ranker) HasSelection() bool {
	_, ok := r.Selected()
	return ok
}
