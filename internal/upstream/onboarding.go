package upstream

import (
	"context"
	"encoding/json"
	"net/http"
)

// SendOnboarding dispatches an onboarding packet to a job seeker.
func (c *Client) SendOnboarding(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.do(ctx, token, http.MethodPost, "/api/onboarding/send", nil, payload, nil)
}

func (c *Client) GetOnboarding(ctx context.Context, token, jobSeekerID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, token, http.MethodGet, "/api/onboarding/job-seekers/"+jobSeekerID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOnboarding(ctx context.Context, token, jobSeekerID string, payload map[string]interface{}) error {
	return c.do(ctx, token, http.MethodPost, "/api/onboarding/job-seekers/"+jobSeekerID, nil, payload, nil)
}

func (c *Client) GetOnboardingItem(ctx context.Context, token, itemID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, token, http.MethodGet, "/api/onboarding/items/"+itemID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveOnboardingItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, token, http.MethodPost, "/api/onboarding/items/"+itemID+"/admin-approve", nil, nil, nil)
}

type RejectItemRequest struct {
	Reason string `json:"reason"`
}

func (c *Client) RejectOnboardingItem(ctx context.Context, token, itemID string, req RejectItemRequest) error {
	return c.do(ctx, token, http.MethodPost, "/api/onboarding/items/"+itemID+"/reject", nil, req, nil)
}

func (c *Client) ListPackets(ctx context.Context, token string) ([]map[string]interface{}, error) {
	return c.listPlain(ctx, token, "/api/packets", "packets")
}

func (c *Client) ListJobs(ctx context.Context, token string) ([]map[string]interface{}, error) {
	return c.listPlain(ctx, token, "/api/jobs", "jobs")
}

func (c *Client) ListActiveUsers(ctx context.Context, token string) ([]map[string]interface{}, error) {
	return c.listPlain(ctx, token, "/api/users/active", "users")
}

func (c *Client) listPlain(ctx context.Context, token, path, key string) ([]map[string]interface{}, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	items := decodeList(raw, key)
	if items == nil {
		items = []map[string]interface{}{}
	}
	return items, nil
}
