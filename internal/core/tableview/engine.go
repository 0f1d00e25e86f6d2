package tableview

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort holds the single active sort column. The engine honors exactly one
// sort key at a time; a nil Sort means catalog order.
type Sort struct {
	Key string        `json:"key"`
	Dir SortDirection `json:"dir"`
}

// Query is the full view state applied to a fetched record snapshot.
type Query struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters"`
	Sort    *Sort             `json:"sort"`
}

// ArchiveMode is the base exclusion applied before any user filtering.
type ArchiveMode int

const (
	ArchiveIgnore  ArchiveMode = iota // entity has no archive lifecycle
	ArchiveExclude                    // main list: drop archived records
	ArchiveOnly                       // archived list: keep only archived records
)

// Apply runs the filter/sort/search pipeline. It is pure: the input slice is
// never reordered or modified, and the same inputs always produce the same
// output. Pipeline order is fixed: base exclusion, global search, per-column
// filters (AND), then the single-column sort.
func Apply(records []Record, q Query, cat *catalog.Catalog, mode ArchiveMode) []Record {
	out := make([]Record, 0, len(records))

	searchKeys := catalog.SearchKeys(cat.Entity)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, r := range records {
		switch mode {
		case ArchiveExclude:
			if r.Archived {
				continue
			}
		case ArchiveOnly:
			if !r.Archived {
				continue
			}
		}

		if search != "" && !matchesSearch(r, search, searchKeys) {
			continue
		}

		if !matchesFilters(r, q.Filters, cat) {
			continue
		}

		out = append(out, r)
	}

	if q.Sort != nil && q.Sort.Key != "" && cat.Has(q.Sort.Key) {
		sortRecords(out, *q.Sort)
	}

	return out
}

// matchesSearch keeps a record when any human-facing field contains the term.
func matchesSearch(r Record, search string, keys []string) bool {
	for _, key := range keys {
		v := r.Value(key)
		if v == Placeholder {
			continue
		}
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

// matchesFilters AND-composes every non-empty column filter. Unknown keys
// are skipped rather than failing the record.
func matchesFilters(r Record, filters map[string]string, cat *catalog.Catalog) bool {
	for key, want := range filters {
		if strings.TrimSpace(want) == "" {
			continue
		}
		col, ok := cat.Column(key)
		if !ok {
			continue
		}

		have := r.Value(key)
		if col.FilterType == catalog.FilterSelect {
			if have != want {
				return false
			}
			continue
		}

		// Numeric equality short-circuit when both sides parse.
		haveN, errH := strconv.ParseFloat(have, 64)
		wantN, errW := strconv.ParseFloat(want, 64)
		if errH == nil && errW == nil {
			if haveN != wantN {
				return false
			}
			continue
		}

		if !strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

func sortRecords(records []Record, s Sort) {
	sign := 1
	if s.Dir == SortDesc {
		sign = -1
	}

	// Collators keep mutable iteration buffers, so each sort gets its own.
	collator := collate.New(language.AmericanEnglish, collate.Numeric, collate.IgnoreCase)

	sort.SliceStable(records, func(i, j int) bool {
		return sign*compareValues(collator, records[i].Value(s.Key), records[j].Value(s.Key)) < 0
	})
}

// compareValues orders numerically when both sides parse as finite numbers,
// otherwise with a locale-aware, numeric-aware string comparison so that
// "Item 9" sorts before "Item 10".
func compareValues(collator *collate.Collator, a, b string) int {
	an, errA := strconv.ParseFloat(a, 64)
	bn, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return collator.CompareString(a, b)
}
