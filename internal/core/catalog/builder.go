package catalog

// nativeKeys lists the backend-native column names per entity. A schema field
// whose name matches one of these keeps the backend key instead of being
// synthesized as a custom:<name> column.
var nativeKeys = map[Entity][]string{
	EntityJobSeeker: {
		"id", "first_name", "last_name", "name", "email", "phone",
		"status", "owner", "archive_reason", "created_at", "updated_at",
	},
	EntityTask: {
		"id", "title", "status", "priority", "completed",
		"due_date", "assigned_to", "job_seeker_id", "created_at",
	},
	EntityTemplateDocument: {
		"id", "document_name", "category", "description",
		"approval_required", "created_at",
	},
}

// requiredColumns are appended when absent regardless of what the remote
// schema reports. The archived job-seeker list always shows the archive
// reason even when the field was removed from field management.
var requiredColumns = map[Entity][]Column{
	EntityJobSeeker: {
		{Key: "archive_reason", Label: "Archive Reason", Sortable: true, FilterType: FilterSelect},
	},
}

// selectKeys are enum-like columns that filter by exact match.
var selectKeys = map[string]bool{
	"status":         true,
	"archive_reason": true,
	"priority":       true,
	"completed":      true,
}

// SearchKeys returns the human-facing columns the global search scans.
func SearchKeys(entity Entity) []string {
	switch entity {
	case EntityJobSeeker:
		return []string{"id", "name", "first_name", "last_name", "email", "status", "owner"}
	case EntityTask:
		return []string{"id", "title", "status", "assigned_to"}
	case EntityTemplateDocument:
		return []string{"id", "document_name", "category", "description"}
	}
	return nil
}

// Build derives the column catalog for an entity from the remote schema.
// A malformed or empty schema yields a catalog of just the required columns;
// it never fails.
func Build(entity Entity, fields []SchemaField) *Catalog {
	native := make(map[string]bool, len(nativeKeys[entity]))
	for _, k := range nativeKeys[entity] {
		native[k] = true
	}

	var columns []Column
	seen := make(map[string]bool)

	for _, f := range fields {
		if f.Hidden || f.Name == "" {
			continue
		}

		key := f.Name
		if !native[f.Name] {
			ref := f.Label
			if ref == "" {
				ref = f.Name
			}
			key = "custom:" + ref
		}
		if seen[key] {
			// First occurrence wins.
			continue
		}
		seen[key] = true

		label := f.Label
		if label == "" {
			label = Humanize(f.Name)
		}

		columns = append(columns, Column{
			Key:        key,
			Label:      label,
			Sortable:   true,
			FilterType: filterTypeFor(f),
			FieldType:  f.Type,
			LookupType: f.LookupType,
			Options:    f.Options,
		})
	}

	for _, col := range requiredColumns[entity] {
		if !seen[col.Key] {
			seen[col.Key] = true
			columns = append(columns, col)
		}
	}

	return newCatalog(entity, columns)
}

func filterTypeFor(f SchemaField) FilterType {
	if selectKeys[f.Name] || len(f.Options) > 0 {
		return FilterSelect
	}
	switch f.Type {
	case "number", "int", "integer", "float", "decimal", "currency":
		return FilterNumber
	}
	return FilterText
}
