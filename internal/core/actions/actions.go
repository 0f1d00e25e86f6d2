package actions

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrent bounds the bulk fan-out so a large selection does not open
// an unbounded number of upstream connections.
const maxConcurrent = 8

// jobSeekerAPI is the slice of the upstream client the dispatcher needs.
type jobSeekerAPI interface {
	DeleteJobSeeker(ctx context.Context, token, id string) error
	UpdateJobSeeker(ctx context.Context, token, id string, payload map[string]interface{}) error
}

// BulkResult reports a fan-out outcome. Partial completion is terminal:
// successful requests are never rolled back, and the caller re-fetches the
// list to reconcile with backend truth.
type BulkResult struct {
	Requested int      `json:"requested"`
	Failed    int      `json:"failed"`
	Messages  []string `json:"messages,omitempty"`
}

// Err returns an aggregate error naming the failure count, or nil when
// every request succeeded.
func (r BulkResult) Err(verb string) error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("failed to %s %d of %d", verb, r.Failed, r.Requested)
}

// Dispatcher runs per-row and bulk mutations against the upstream API.
// There are no optimistic updates: after any mutation the caller reloads.
type Dispatcher struct {
	client jobSeekerAPI
}

func NewDispatcher(client jobSeekerAPI) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) Delete(ctx context.Context, token, id string) error {
	return d.client.DeleteJobSeeker(ctx, token, id)
}

func (d *Dispatcher) ChangeOwner(ctx context.Context, token, id, owner string) error {
	return d.client.UpdateJobSeeker(ctx, token, id, map[string]interface{}{"owner": owner})
}

func (d *Dispatcher) ChangeStatus(ctx context.Context, token, id, status string) error {
	return d.client.UpdateJobSeeker(ctx, token, id, map[string]interface{}{"status": status})
}

func (d *Dispatcher) BulkDelete(ctx context.Context, token string, ids []string) BulkResult {
	return d.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		return d.client.DeleteJobSeeker(ctx, token, id)
	})
}

func (d *Dispatcher) BulkChangeOwner(ctx context.Context, token string, ids []string, owner string) BulkResult {
	return d.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		return d.client.UpdateJobSeeker(ctx, token, id, map[string]interface{}{"owner": owner})
	})
}

func (d *Dispatcher) BulkChangeStatus(ctx context.Context, token string, ids []string, status string) BulkResult {
	return d.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		return d.client.UpdateJobSeeker(ctx, token, id, map[string]interface{}{"status": status})
	})
}

// fanOut fires one request per id concurrently and counts rejections. A
// failure never cancels the other requests; whatever succeeded stays done.
func (d *Dispatcher) fanOut(ctx context.Context, ids []string, op func(context.Context, string) error) BulkResult {
	result := BulkResult{Requested: len(ids)}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := op(ctx, id); err != nil {
				mu.Lock()
				result.Failed++
				result.Messages = append(result.Messages, err.Error())
				mu.Unlock()
			}
			// Always nil: one rejection must not cancel the siblings.
			return nil
		})
	}
	g.Wait()

	return result
}
