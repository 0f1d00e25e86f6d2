package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/core/tableview"
)

func (c *Client) ListTasks(ctx context.Context, token string) ([]tableview.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/api/tasks", nil, nil, &raw); err != nil {
		return nil, err
	}
	return tableview.NormalizeAll(decodeList(raw, "tasks")), nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.do(ctx, token, http.MethodPut, "/api/tasks/"+id, nil, payload, nil)
}
