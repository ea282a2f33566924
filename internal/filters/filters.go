// internal/filters/filters.go
//
// The filter/sort engine turns the operator's current (filters, sort,
// search) triple into a canonical conflict-list query. The query string is
// deterministic: multi-value dimensions are sorted before joining, so the
// same logical filter state always produces the same request.

package filters

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/medroster/conflictdeck/internal/conflict"
)

// SortField names a column the conflict list can be ordered by.
type SortField string

const (
	SortBySeverity   SortField = "severity"
	SortByDate       SortField = "date"
	SortByDetectedAt SortField = "detected_at"
	SortByType       SortField = "type"
	SortByStatus     SortField = "status"
)

// SortFields lists the sortable columns in display order.
var SortFields = []SortField{SortBySeverity, SortByDate, SortByDetectedAt, SortByType, SortByStatus}

// SortDirection is asc or desc.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sort is the active ordering of the conflict list.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DateRange bounds the conflict_date dimension, inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filters is the operator's current filter state. Empty slices mean the
// dimension is inactive.
type Filters struct {
	Types      []conflict.Type
	Severities []conflict.Severity
	Statuses   []conflict.Status
	PersonIDs  []string
	DateRange  *DateRange
	Search     string
}

// DefaultSort orders newest detections first.
var DefaultSort = Sort{Field: SortByDetectedAt, Direction: Descending}

// Engine holds filter, sort, and paging state for the conflict list.
type Engine struct {
	filters  Filters
	sort     Sort
	page     int
	pageSize int
}

// NewEngine returns an engine with no active filters and the default sort.
func NewEngine(pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Engine{sort: DefaultSort, page: 1, pageSize: pageSize}
}

// Filters returns a copy of the current filter state.
func (e *Engine) Filters() Filters {
	f := e.filters
	f.Types = append([]conflict.Type(nil), e.filters.Types...)
	f.Severities = append([]conflict.Severity(nil), e.filters.Severities...)
	f.Statuses = append([]conflict.Status(nil), e.filters.Statuses...)
	f.PersonIDs = append([]string(nil), e.filters.PersonIDs...)
	if e.filters.DateRange != nil {
		r := *e.filters.DateRange
		f.DateRange = &r
	}
	return f
}

// Sort returns the active sort.
func (e *Engine) Sort() Sort {
	return e.sort
}

// Page returns the current page (1-based).
func (e *Engine) Page() int {
	return e.page
}

// SetPage moves to the given page; pages below 1 clamp to 1.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}

// ToggleType adds or removes one type from the type dimension and resets
// paging.
func (e *Engine) ToggleType(t conflict.Type) {
	e.filters.Types = toggleValue(e.filters.Types, t)
	e.page = 1
}

// ToggleSeverity adds or removes one severity and resets paging.
func (e *Engine) ToggleSeverity(s conflict.Severity) {
	e.filters.Severities = toggleValue(e.filters.Severities, s)
	e.page = 1
}

// ToggleStatus adds or removes one status and resets paging.
func (e *Engine) ToggleStatus(s conflict.Status) {
	e.filters.Statuses = toggleValue(e.filters.Statuses, s)
	e.page = 1
}

// SetPersonIDs replaces the person dimension and resets paging.
func (e *Engine) SetPersonIDs(ids []string) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	e.filters.PersonIDs = cleaned
	e.page = 1
}

// SetDateRange replaces the date dimension; a nil range clears it.
func (e *Engine) SetDateRange(r *DateRange) {
	if r != nil && r.Start.IsZero() && r.End.IsZero() {
		r = nil
	}
	e.filters.DateRange = r
	e.page = 1
}

// SetSearch replaces the search query and resets paging.
func (e *Engine) SetSearch(query string) {
	e.filters.Search = strings.TrimSpace(query)
	e.page = 1
}

// Search returns the active search query.
func (e *Engine) Search() string {
	return e.filters.Search
}

// ToggleSort flips direction when the field is already active; selecting a
// new field resets direction to descending.
func (e *Engine) ToggleSort(field SortField) {
	if e.sort.Field == field {
		if e.sort.Direction == Descending {
			e.sort.Direction = Ascending
		} else {
			e.sort.Direction = Descending
		}
		return
	}
	e.sort = Sort{Field: field, Direction: Descending}
}

// ClearAll resets every filter dimension and the search query atomically.
// Sort and page size survive; paging returns to the first page.
func (e *Engine) ClearAll() {
	e.filters = Filters{}
	e.page = 1
}

// ActiveFilterCount is the number of non-empty filter dimensions, plus one
// when a search query is set. It drives the filter badge and the decision
// between "no conflicts at all" and "no conflicts match your filters".
func (e *Engine) ActiveFilterCount() int {
	count := 0
	if len(e.filters.Types) > 0 {
		count++
	}
	if len(e.filters.Severities) > 0 {
		count++
	}
	if len(e.filters.Statuses) > 0 {
		count++
	}
	if len(e.filters.PersonIDs) > 0 {
		count++
	}
	if e.filters.DateRange != nil {
		count++
	}
	if e.filters.Search != "" {
		count++
	}
	return count
}

// HasActiveFilters reports whether any dimension or the search is set.
func (e *Engine) HasActiveFilters() bool {
	return e.ActiveFilterCount() > 0
}

// Query renders the canonical query parameters for GET /conflicts.
// Array dimensions are comma-joined per the backend contract.
func (e *Engine) Query() url.Values {
	values := url.Values{}
	if joined := joinSorted(typeStrings(e.filters.Types)); joined != "" {
		values.Set("types", joined)
	}
	if joined := joinSorted(severityStrings(e.filters.Severities)); joined != "" {
		values.Set("severities", joined)
	}
	if joined := joinSorted(statusStrings(e.filters.Statuses)); joined != "" {
		values.Set("statuses", joined)
	}
	if joined := joinSorted(append([]string(nil), e.filters.PersonIDs...)); joined != "" {
		values.Set("person_ids", joined)
	}
	if r := e.filters.DateRange; r != nil {
		if !r.Start.IsZero() {
			values.Set("start_date", r.Start.Format("2006-01-02"))
		}
		if !r.End.IsZero() {
			values.Set("end_date", r.End.Format("2006-01-02"))
		}
	}
	if e.filters.Search != "" {
		values.Set("search", e.filters.Search)
	}
	values.Set("sort_by", string(e.sort.Field))
	values.Set("sort_dir", string(e.sort.Direction))
	values.Set("page", strconv.Itoa(e.page))
	values.Set("page_size", strconv.Itoa(e.pageSize))
	return values
}

func toggleValue[T comparable](values []T, target T) []T {
	for i, v := range values {
		if v == target {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return append(values, target)
}

func joinSorted(values []string) string {
	cleaned := values[:0]
	for _, v := range values {
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}

func typeStrings(values []conflict.Type) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func severityStrings(values []conflict.Severity) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func statusStrings(values []conflict.Status) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
