// internal/api/invalidation.go
//
// Declarative cache-invalidation table: on a successful mutation the caller
// looks up which cached data sets are stale and refetches them. Keeping the
// table here, next to the mutations, means a new endpoint cannot silently
// skip invalidation.

package api

// Mutation names a state-changing backend call.
type Mutation string

const (
	MutationResolve       Mutation = "resolve"
	MutationResolveManual Mutation = "resolve_manual"
	MutationStatusUpdate  Mutation = "status_update"
	MutationOverride      Mutation = "override"
	MutationBatchResolve  Mutation = "batch_resolve"
	MutationBatchIgnore   Mutation = "batch_ignore"
	MutationDetect        Mutation = "detect"
)

// CacheKey names one cached data set the console (or a sibling feature)
// keeps warm.
type CacheKey string

const (
	KeyConflictList   CacheKey = "conflict_list"
	KeyConflictDetail CacheKey = "conflict_detail"
	KeyStatistics     CacheKey = "statistics"
	KeyPatterns       CacheKey = "patterns"

	// Owned by sibling features; the console forwards these keys to them.
	KeySchedule    CacheKey = "schedule"
	KeyAssignments CacheKey = "assignments"
	KeyValidation  CacheKey = "validation"
)

var invalidations = map[Mutation][]CacheKey{
	MutationResolve:       {KeyConflictList, KeyConflictDetail, KeyStatistics, KeySchedule, KeyAssignments, KeyValidation},
	MutationResolveManual: {KeyConflictList, KeyConflictDetail, KeyStatistics, KeySchedule, KeyAssignments, KeyValidation},
	MutationStatusUpdate:  {KeyConflictList, KeyConflictDetail, KeyStatistics},
	MutationOverride:      {KeyConflictList, KeyConflictDetail, KeyStatistics, KeyValidation},
	MutationBatchResolve:  {KeyConflictList, KeyConflictDetail, KeyStatistics, KeySchedule, KeyAssignments, KeyValidation},
	MutationBatchIgnore:   {KeyConflictList, KeyConflictDetail, KeyStatistics},
	MutationDetect:        {KeyConflictList, KeyStatistics, KeyPatterns},
}

// InvalidatedKeys returns the cache keys made stale by a successful
// mutation, in a fixed order.
func InvalidatedKeys(m Mutation) []CacheKey {
	keys, ok := invalidations[m]
	if !ok {
		return nil
	}
	return append([]CacheKey(nil), keys...)
}

// Invalidates reports whether a mutation makes the given key stale.
func Invalidates(m Mutation, key CacheKey) bool {
	for _, k := range InvalidatedKeys(m) {
		if k == key {
			return true
		}
	}
	return false
}
