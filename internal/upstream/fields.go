package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
)

// FieldSchema fetches the admin-defined field schema for an entity. The
// field-management endpoint has shipped several response shapes over time
// ({"customFields": [...]}, {"fields": [...]}, {"data": {"fields": [...]}},
// a bare array); all are tolerated, and anything unrecognizable yields an
// empty schema rather than an error.
func (c *Client) FieldSchema(ctx context.Context, token string, entity catalog.Entity) ([]catalog.SchemaField, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/api/admin/field-management/"+string(entity), nil, nil, &raw); err != nil {
		return nil, err
	}
	return parseSchemaFields(raw), nil
}

func parseSchemaFields(raw json.RawMessage) []catalog.SchemaField {
	items := decodeList(raw, "customFields")
	if items == nil {
		items = decodeList(raw, "fields")
	}
	if items == nil {
		// {"data": {"fields": [...]}}
		var nested struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && len(nested.Data) > 0 {
			items = decodeList(nested.Data, "fields")
		}
	}

	fields := make([]catalog.SchemaField, 0, len(items))
	for _, item := range items {
		f := catalog.SchemaField{
			Name:       stringAt(item, "name", "field_name", "fieldName"),
			Label:      stringAt(item, "label", "field_label"),
			Type:       stringAt(item, "type", "field_type", "fieldType"),
			LookupType: stringAt(item, "lookupType", "lookup_type"),
		}
		if f.Name == "" {
			continue
		}
		if hidden, ok := item["hidden"].(bool); ok {
			f.Hidden = hidden
		} else if hidden, ok := item["is_hidden"].(bool); ok {
			f.Hidden = hidden
		}
		if opts, ok := item["options"].([]interface{}); ok {
			for _, o := range opts {
				if s, ok := o.(string); ok {
					f.Options = append(f.Options, s)
				}
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func stringAt(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
