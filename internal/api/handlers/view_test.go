package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/api/middleware"
	"github.com/staffdesk/staffdesk/internal/core/favorites"
	"github.com/staffdesk/staffdesk/internal/core/layout"
	"github.com/staffdesk/staffdesk/internal/settings"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeSession injects an upstream token the way the session middleware
// does after validating a cookie.
func fakeSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUpstreamToken, "test-token")
		c.Next()
	}
}

const jobSeekerSchema = `{"fields": [
	{"name": "name", "label": "Name", "type": "text"},
	{"name": "status", "label": "Status", "type": "select", "options": ["Active", "Placed"]},
	{"name": "Shirt Size", "label": "Shirt Size", "type": "text"}
]}`

func newViewTestRouter(t *testing.T, upstreamHandler http.Handler) (*gin.Engine, *httptest.Server) {
	t.Helper()

	backend := httptest.NewServer(upstreamHandler)
	t.Cleanup(backend.Close)

	client := upstream.NewClient(backend.URL, 0, testLogger())
	store := settings.NewMemoryStore()
	h := NewViewHandler(client, layout.NewStore(store), favorites.NewStore(store), testLogger())

	engine := gin.New()
	views := engine.Group("/api/views/:entity", fakeSession())
	views.GET("/catalog", h.GetCatalog)
	views.GET("/layout", h.GetLayout)
	views.PUT("/layout", h.SetLayout)
	views.POST("/layout/toggle", h.ToggleColumn)
	views.POST("/layout/reorder", h.ReorderColumns)
	views.POST("/layout/reset", h.ResetLayout)
	views.GET("/favorites", h.ListFavorites)
	views.POST("/favorites", h.SaveFavorite)
	views.DELETE("/favorites/:id", h.DeleteFavorite)
	views.POST("/favorites/:id/apply", h.ApplyFavorite)
	return engine, backend
}

func schemaBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/field-management/job_seeker" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(jobSeekerSchema))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
	})
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetCatalog_UnknownEntity(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodGet, "/api/views/invoices/catalog", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown entity, got %d", w.Code)
	}
}

func TestGetCatalog_BuildsColumnsFromSchema(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodGet, "/api/views/job-seekers/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Columns []struct {
			Key        string `json:"key"`
			FilterType string `json:"filterType"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	keys := make(map[string]string)
	for _, col := range resp.Columns {
		keys[col.Key] = col.FilterType
	}
	if keys["status"] != "select" {
		t.Errorf("expected status to be a select filter, got %q", keys["status"])
	}
	if _, ok := keys["custom:Shirt Size"]; !ok {
		t.Errorf("expected custom field column, got keys %v", keys)
	}
}

func TestGetCatalog_SchemaFailureYieldsEmptyCatalog(t *testing.T) {
	engine, _ := newViewTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	w := doJSON(engine, http.MethodGet, "/api/views/job-seekers/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite schema failure, got %d", w.Code)
	}

	var resp struct {
		Columns []json.RawMessage `json:"columns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Columns) != 0 {
		t.Errorf("expected empty catalog, got %d columns", len(resp.Columns))
	}
}

func TestLayout_ToggleAndReorderRoundTrip(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodPost, "/api/views/job-seekers/layout/toggle", gin.H{"key": "status"})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, f := range resp.Fields {
		if f == "status" {
			t.Fatalf("status should be hidden after toggle, got %v", resp.Fields)
		}
	}

	// Hidden state must survive a fresh load
	w = doJSON(engine, http.MethodGet, "/api/views/job-seekers/layout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("layout load failed: %d", w.Code)
	}
	var loaded struct {
		Fields []string `json:"fields"`
	}
	json.Unmarshal(w.Body.Bytes(), &loaded)
	for _, f := range loaded.Fields {
		if f == "status" {
			t.Fatalf("toggled column came back after reload: %v", loaded.Fields)
		}
	}
}

func TestLayout_ToggleUnknownColumn(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodPost, "/api/views/job-seekers/layout/toggle", gin.H{"key": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown column, got %d", w.Code)
	}
}

func TestLayout_ReorderOutOfRange(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodPost, "/api/views/job-seekers/layout/reorder", gin.H{"from": 0, "to": 99})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range index, got %d", w.Code)
	}
}

func TestFavorites_SaveApplyDelete(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodPost, "/api/views/job-seekers/favorites", gin.H{
		"name": "active only",
		"state": gin.H{
			"searchTerm":    "smith",
			"columnFilters": gin.H{"status": "Active", "ghost": "x"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("save failed: %d %s", w.Code, w.Body.String())
	}

	var fav struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fav); err != nil || fav.ID == "" {
		t.Fatalf("expected favorite id in response, got %s", w.Body.String())
	}

	w = doJSON(engine, http.MethodPost, "/api/views/job-seekers/favorites/"+fav.ID+"/apply", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("apply failed: %d %s", w.Code, w.Body.String())
	}

	var state struct {
		SearchTerm    string            `json:"searchTerm"`
		ColumnFilters map[string]string `json:"columnFilters"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if state.SearchTerm != "smith" {
		t.Errorf("search term not restored: %q", state.SearchTerm)
	}
	if state.ColumnFilters["status"] != "Active" {
		t.Errorf("filter not restored: %v", state.ColumnFilters)
	}
	if _, ok := state.ColumnFilters["ghost"]; ok {
		t.Errorf("filter for unknown column should be pruned: %v", state.ColumnFilters)
	}

	w = doJSON(engine, http.MethodDelete, "/api/views/job-seekers/favorites/"+fav.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", w.Code)
	}

	w = doJSON(engine, http.MethodPost, "/api/views/job-seekers/favorites/"+fav.ID+"/apply", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 applying deleted favorite, got %d", w.Code)
	}
}

func TestFavorites_ListEmptyIsArray(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodGet, "/api/views/job-seekers/favorites", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"favorites":[]`) {
		t.Errorf("empty favorites should serialize as an array, got %s", w.Body.String())
	}
}

func TestFavorites_BlankName(t *testing.T) {
	engine, _ := newViewTestRouter(t, schemaBackend())

	w := doJSON(engine, http.MethodPost, "/api/views/job-seekers/favorites", gin.H{
		"name":  "   ",
		"state": gin.H{},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", w.Code)
	}
}
