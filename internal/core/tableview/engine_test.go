package tableview

import (
	"sync"
	"testing"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
)

func jobSeekerCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Build(catalog.EntityJobSeeker, []catalog.SchemaField{
		{Name: "name", Type: "text"},
		{Name: "email", Type: "text"},
		{Name: "status", Type: "text"},
		{Name: "owner", Type: "text"},
		{Name: "desired_salary", Label: "Desired Salary", Type: "number"},
	})
}

func seeker(fields map[string]interface{}) Record {
	return Normalize(fields)
}

func TestApply_SelectFilterExactMatch(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "status": "Active"}),
		seeker(map[string]interface{}{"id": "2", "status": "Archived"}),
	}

	out := Apply(records, Query{Filters: map[string]string{"status": "Active"}}, cat, ArchiveIgnore)

	if len(out) != 1 || out[0].Value("status") != "Active" {
		t.Fatalf("got %d records, want exactly the Active one", len(out))
	}
}

func TestApply_TextFilterSubstringCaseInsensitive(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "name": "Dana Whitfield"}),
		seeker(map[string]interface{}{"id": "2", "name": "Marcus Lowe"}),
	}

	out := Apply(records, Query{Filters: map[string]string{"name": "whit"}}, cat, ArchiveIgnore)

	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("substring filter should match case-insensitively, got %d records", len(out))
	}
}

func TestApply_NumericFilterShortCircuit(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "customFields": map[string]interface{}{"Desired Salary": 50000.0}}),
		seeker(map[string]interface{}{"id": "2", "customFields": map[string]interface{}{"Desired Salary": 150000.0}}),
	}

	// "50000" must match only the exact number, not the substring in 150000.
	out := Apply(records, Query{Filters: map[string]string{"custom:Desired Salary": "50000"}}, cat, ArchiveIgnore)

	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("numeric filter should compare by equality, got %d records", len(out))
	}
}

func TestApply_FiltersAreANDComposed(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "status": "Active", "owner": "pat"}),
		seeker(map[string]interface{}{"id": "2", "status": "Active", "owner": "sam"}),
	}

	out := Apply(records, Query{Filters: map[string]string{"status": "Active", "owner": "pat"}}, cat, ArchiveIgnore)
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("AND composition failed, got %d records", len(out))
	}
}

func TestApply_RelaxingFilterYieldsSuperset(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "status": "Active", "owner": "pat"}),
		seeker(map[string]interface{}{"id": "2", "status": "Active", "owner": "sam"}),
		seeker(map[string]interface{}{"id": "3", "status": "Hold", "owner": "pat"}),
	}

	strict := Apply(records, Query{Filters: map[string]string{"status": "Active", "owner": "pat"}}, cat, ArchiveIgnore)
	relaxed := Apply(records, Query{Filters: map[string]string{"status": "Active", "owner": ""}}, cat, ArchiveIgnore)

	if len(relaxed) < len(strict) {
		t.Fatal("clearing a filter must never shrink the result")
	}
	for _, r := range strict {
		found := false
		for _, rr := range relaxed {
			if rr.ID == r.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("record %s present under strict filters but missing after relaxation", r.ID)
		}
	}
}

func TestApply_GlobalSearchORSemantics(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "name": "Dana", "email": "dana@example.com"}),
		seeker(map[string]interface{}{"id": "2", "name": "Marcus", "email": "m@corp.example"}),
		seeker(map[string]interface{}{"id": "3", "name": "Priya", "email": "priya@corp.example"}),
	}

	// "corp" matches two records by email even though no name contains it.
	out := Apply(records, Query{Search: "CORP"}, cat, ArchiveIgnore)
	if len(out) != 2 {
		t.Fatalf("search should OR across fields, got %d records", len(out))
	}
}

func TestApply_ArchiveModes(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "archived": false}),
		seeker(map[string]interface{}{"id": "2", "archived": true}),
	}

	if out := Apply(records, Query{}, cat, ArchiveExclude); len(out) != 1 || out[0].ID != "1" {
		t.Errorf("ArchiveExclude should drop archived records")
	}
	if out := Apply(records, Query{}, cat, ArchiveOnly); len(out) != 1 || out[0].ID != "2" {
		t.Errorf("ArchiveOnly should keep only archived records")
	}
	if out := Apply(records, Query{}, cat, ArchiveIgnore); len(out) != 2 {
		t.Errorf("ArchiveIgnore should keep everything")
	}
}

func TestApply_NumericAwareSort(t *testing.T) {
	cat := catalog.Build(catalog.EntityTask, []catalog.SchemaField{{Name: "title", Type: "text"}})
	records := []Record{
		Normalize(map[string]interface{}{"id": "1", "title": "Item 10"}),
		Normalize(map[string]interface{}{"id": "2", "title": "Item 2"}),
	}

	out := Apply(records, Query{Sort: &Sort{Key: "title", Dir: SortAsc}}, cat, ArchiveIgnore)

	if out[0].Value("title") != "Item 2" || out[1].Value("title") != "Item 10" {
		t.Fatalf("want [Item 2, Item 10], got [%s, %s]", out[0].Value("title"), out[1].Value("title"))
	}
}

func TestApply_SortDescending(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "name": "Alice"}),
		seeker(map[string]interface{}{"id": "2", "name": "Bob"}),
	}

	out := Apply(records, Query{Sort: &Sort{Key: "name", Dir: SortDesc}}, cat, ArchiveIgnore)
	if out[0].ID != "2" {
		t.Error("descending sort should flip the order")
	}
}

func TestApply_SortNumericColumn(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "customFields": map[string]interface{}{"Desired Salary": 90000.0}}),
		seeker(map[string]interface{}{"id": "2", "customFields": map[string]interface{}{"Desired Salary": 120000.0}}),
	}

	out := Apply(records, Query{Sort: &Sort{Key: "custom:Desired Salary", Dir: SortAsc}}, cat, ArchiveIgnore)
	if out[0].ID != "1" {
		t.Error("numeric values should sort by magnitude, not lexicographically")
	}
}

func TestApply_SortIsIdempotent(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "3", "name": "Carol"}),
		seeker(map[string]interface{}{"id": "1", "name": "Alice"}),
		seeker(map[string]interface{}{"id": "2", "name": "Bob"}),
	}

	q := Query{Sort: &Sort{Key: "name", Dir: SortAsc}}
	once := Apply(records, q, cat, ArchiveIgnore)
	twice := Apply(once, q, cat, ArchiveIgnore)

	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("re-sorting a sorted list changed the order at %d", i)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "2", "name": "Bob"}),
		seeker(map[string]interface{}{"id": "1", "name": "Alice"}),
	}

	Apply(records, Query{Sort: &Sort{Key: "name", Dir: SortAsc}}, cat, ArchiveIgnore)

	if records[0].ID != "2" {
		t.Error("Apply must not reorder the input slice")
	}
}

func TestApply_UnknownSortAndFilterKeysAreIgnored(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "1", "name": "Alice"}),
	}

	out := Apply(records, Query{
		Filters: map[string]string{"custom:Removed Field": "x"},
		Sort:    &Sort{Key: "custom:Also Removed", Dir: SortAsc},
	}, cat, ArchiveIgnore)

	if len(out) != 1 {
		t.Fatal("stale keys must be ignored, not fail the pipeline")
	}
}

// The engine runs once per list request and requests are served in
// parallel, so sorted Apply calls must not share mutable state. Run under
// the race detector.
func TestApply_ConcurrentSortedCalls(t *testing.T) {
	cat := jobSeekerCatalog(t)
	records := []Record{
		seeker(map[string]interface{}{"id": "3", "name": "Item 10"}),
		seeker(map[string]interface{}{"id": "1", "name": "Item 2"}),
		seeker(map[string]interface{}{"id": "2", "name": "Item 9"}),
	}
	q := Query{Sort: &Sort{Key: "name", Dir: SortAsc}}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				out := Apply(records, q, cat, ArchiveIgnore)
				if out[0].ID != "1" || out[1].ID != "2" || out[2].ID != "3" {
					t.Errorf("concurrent sort produced wrong order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRecord_ValueResolution(t *testing.T) {
	r := Normalize(map[string]interface{}{
		"id":        42.0,
		"firstName": "Dana",
		"createdAt": "2024-03-09T12:30:00Z",
		"custom_fields": map[string]interface{}{
			"shirt_size": "M",
			"empty":      "",
		},
	})

	if r.ID != "42" {
		t.Errorf("ID = %q, want 42", r.ID)
	}
	if got := r.Value("first_name"); got != "Dana" {
		t.Errorf("camelCase field should normalize to snake_case, got %q", got)
	}
	if got := r.Value("created_at"); got != "03/09/2024" {
		t.Errorf("dates should format MM/DD/YYYY, got %q", got)
	}
	if got := r.Value("custom:shirt_size"); got != "M" {
		t.Errorf("custom lookup = %q, want M", got)
	}
	if got := r.Value("custom:Shirt Size"); got == Placeholder {
		// snake_case alias of the label form
		t.Error("custom lookup should fall back to the snake_case alias")
	}
	if got := r.Value("custom:empty"); got != Placeholder {
		t.Errorf("empty value should render the placeholder, got %q", got)
	}
	if got := r.Value("custom:missing"); got != Placeholder {
		t.Errorf("missing value should render the placeholder, got %q", got)
	}
	if got := r.Value("nonexistent"); got != Placeholder {
		t.Errorf("missing native field should render the placeholder, got %q", got)
	}
}

func TestNormalize_ArchivedDetection(t *testing.T) {
	if !Normalize(map[string]interface{}{"archived": true}).Archived {
		t.Error("archived flag should be detected")
	}
	if !Normalize(map[string]interface{}{"status": "Archived"}).Archived {
		t.Error("Archived status should mark the record archived")
	}
	if Normalize(map[string]interface{}{"status": "Active"}).Archived {
		t.Error("active record should not be archived")
	}
}
