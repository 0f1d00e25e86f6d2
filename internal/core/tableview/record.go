package tableview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Placeholder is rendered wherever a record has no value for a column.
const Placeholder = "—"

// Record is the canonical internal record shape. Upstream responses use a
// mix of camelCase and snake_case field names and either "customFields" or
// "custom_fields" for admin-defined values; Normalize flattens all of that
// once at the boundary so nothing downstream deals with schema drift.
type Record struct {
	ID       string                 `json:"id"`
	Archived bool                   `json:"archived"`
	Fields   map[string]interface{} `json:"fields"`
	Custom   map[string]interface{} `json:"customFields"`
}

// Normalize converts one raw upstream JSON object into a Record.
func Normalize(raw map[string]interface{}) Record {
	r := Record{
		Fields: make(map[string]interface{}, len(raw)),
		Custom: map[string]interface{}{},
	}

	for key, value := range raw {
		switch key {
		case "customFields", "custom_fields":
			if m, ok := value.(map[string]interface{}); ok {
				for ck, cv := range m {
					r.Custom[ck] = cv
				}
			}
		default:
			r.Fields[snakeCase(key)] = value
		}
	}

	if id, ok := r.Fields["id"]; ok {
		r.ID = stringify(id)
	}

	if v, ok := r.Fields["archived"].(bool); ok {
		r.Archived = v
	} else if v, ok := r.Fields["is_archived"].(bool); ok {
		r.Archived = v
	} else if status, ok := r.Fields["status"].(string); ok && strings.EqualFold(status, "archived") {
		r.Archived = true
	}

	return r
}

// NormalizeAll converts a raw upstream list.
func NormalizeAll(raw []map[string]interface{}) []Record {
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		records = append(records, Normalize(item))
	}
	return records
}

// Value resolves a column key against the record, returning a display
// string. Missing and empty values degrade to Placeholder, never an error.
func (r Record) Value(key string) string {
	if name, ok := strings.CutPrefix(key, "custom:"); ok {
		v, found := r.Custom[name]
		if !found {
			// Admin-defined fields are stored under either the label or
			// its snake_case form depending on backend version.
			v, found = r.Custom[snakeCase(name)]
		}
		if !found {
			return Placeholder
		}
		return formatValue(v)
	}

	v, ok := r.Fields[key]
	if !ok {
		return Placeholder
	}
	return formatValue(v)
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		if val == "" {
			return Placeholder
		}
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t.Format("01/02/2006")
		}
		if t, err := time.Parse("2006-01-02", val); err == nil {
			return t.Format("01/02/2006")
		}
		return val
	case time.Time:
		return val.Format("01/02/2006")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func stringify(v interface{}) string {
	s := formatValue(v)
	if s == Placeholder {
		return ""
	}
	return s
}

func snakeCase(name string) string {
	var b strings.Builder
	prevUpper := false
	lastUnderscore := func() bool {
		s := b.String()
		return s != "" && s[len(s)-1] == '_'
	}
	for _, r := range name {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !lastUnderscore() {
				b.WriteByte('_')
			}
			prevUpper = false
		case unicode.IsUpper(r):
			if b.Len() > 0 && !prevUpper && !lastUnderscore() {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevUpper = true
		default:
			b.WriteRune(r)
			prevUpper = false
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
