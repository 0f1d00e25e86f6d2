package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/staffdesk/staffdesk/internal/core/tableview"
)

// ListJobSeekers fetches the full job seeker snapshot, normalized into
// canonical records. archived=true asks the backend for the archived set.
func (c *Client) ListJobSeekers(ctx context.Context, token string, archived bool) ([]tableview.Record, error) {
	query := url.Values{}
	if archived {
		query.Set("archived", "true")
	}

	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/api/job-seekers", query, nil, &raw); err != nil {
		return nil, err
	}
	return tableview.NormalizeAll(decodeList(raw, "jobSeekers")), nil
}

func (c *Client) GetJobSeeker(ctx context.Context, token, id string) (tableview.Record, error) {
	var raw map[string]interface{}
	if err := c.do(ctx, token, http.MethodGet, "/api/job-seekers/"+id, nil, nil, &raw); err != nil {
		return tableview.Record{}, err
	}
	return tableview.Normalize(raw), nil
}

// UpdateJobSeeker posts a partial update (owner change, status change,
// custom field edits) to the backend.
func (c *Client) UpdateJobSeeker(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.do(ctx, token, http.MethodPost, "/api/job-seekers/"+id, nil, payload, nil)
}

func (c *Client) DeleteJobSeeker(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/api/job-seekers/"+id, nil, nil, nil)
}

// ListJobSeekerSubresource fetches a job seeker's nested collection:
// notes, history, documents, references, or applications.
func (c *Client) ListJobSeekerSubresource(ctx context.Context, token, id, name string) ([]map[string]interface{}, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/api/job-seekers/"+id+"/"+name, nil, nil, &raw); err != nil {
		return nil, err
	}
	items := decodeList(raw, name)
	if items == nil {
		items = []map[string]interface{}{}
	}
	return items, nil
}

type CreateNoteRequest struct {
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
}

func (c *Client) CreateJobSeekerNote(ctx context.Context, token, id string, note CreateNoteRequest) error {
	return c.do(ctx, token, http.MethodPost, "/api/job-seekers/"+id+"/notes", nil, note, nil)
}

type DeleteRequestPayload struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateDeleteRequest files a deletion request for review rather than
// deleting the record outright.
func (c *Client) CreateDeleteRequest(ctx context.Context, token, id string, req DeleteRequestPayload) error {
	return c.do(ctx, token, http.MethodPost, "/api/job-seekers/"+id+"/delete-request", nil, req, nil)
}
