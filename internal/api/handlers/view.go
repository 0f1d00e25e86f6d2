package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/favorites"
	"github.com/staffdesk/staffdesk/internal/core/layout"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

var viewEntities = map[string]catalog.Entity{
	"job-seekers":        catalog.EntityJobSeeker,
	"tasks":              catalog.EntityTask,
	"template-documents": catalog.EntityTemplateDocument,
}

// ViewHandler manages per-entity table presentation state: the column
// catalog, the persisted column layout and saved favorite views.
type ViewHandler struct {
	layouts   *layout.Store
	favorites *favorites.Store
	schemas   *schemaLoader
}

func NewViewHandler(client *upstream.Client, layouts *layout.Store, favs *favorites.Store, logger *logrus.Logger) *ViewHandler {
	return &ViewHandler{
		layouts:   layouts,
		favorites: favs,
		schemas:   &schemaLoader{client: client, logger: logger},
	}
}

func (h *ViewHandler) entityCatalog(c *gin.Context) (catalog.Entity, *catalog.Catalog, bool) {
	entity, ok := viewEntities[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return "", nil, false
	}

	token, ok := upstreamToken(c)
	if !ok {
		return "", nil, false
	}

	return entity, h.schemas.catalog(c.Request.Context(), token, entity), true
}

func (h *ViewHandler) GetCatalog(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": cat.Columns})
}

func (h *ViewHandler) GetLayout(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	fields, err := h.layouts.Load(c.Request.Context(), cat)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

type SetLayoutRequest struct {
	Fields []string `json:"fields" binding:"required"`
}

func (h *ViewHandler) SetLayout(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	var req SetLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := h.layouts.Set(c.Request.Context(), cat, req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

type ToggleColumnRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *ViewHandler) ToggleColumn(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	var req ToggleColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := h.layouts.Toggle(c.Request.Context(), cat, req.Key)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownColumn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

type ReorderColumnsRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *ViewHandler) ReorderColumns(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := h.layouts.Reorder(c.Request.Context(), cat, req.From, req.To)
	if err != nil {
		if errors.Is(err, layout.ErrInvalidIndex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (h *ViewHandler) ResetLayout(c *gin.Context) {
	_, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	fields, err := h.layouts.Reset(c.Request.Context(), cat)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (h *ViewHandler) ListFavorites(c *gin.Context) {
	entity, ok := viewEntities[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}

	favs, err := h.favorites.List(c.Request.Context(), entity)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"favorites": favs}
	if id, ok := h.favorites.Active(entity); ok {
		body["active"] = id
	}
	c.JSON(http.StatusOK, body)
}

type SaveFavoriteRequest struct {
	Name  string              `json:"name"`
	State favorites.ViewState `json:"state"`
}

func (h *ViewHandler) SaveFavorite(c *gin.Context) {
	entity, ok := viewEntities[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}

	var req SaveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fav, err := h.favorites.Save(c.Request.Context(), entity, req.Name, req.State)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fav)
}

func (h *ViewHandler) DeleteFavorite(c *gin.Context) {
	entity, ok := viewEntities[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favorite id"})
		return
	}

	if err := h.favorites.Delete(c.Request.Context(), entity, id); err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ApplyFavorite resolves a saved view against the current catalog and
// returns the view state the table should adopt.
func (h *ViewHandler) ApplyFavorite(c *gin.Context) {
	entity, cat, ok := h.entityCatalog(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favorite id"})
		return
	}

	state, err := h.favorites.Apply(c.Request.Context(), entity, id, cat)
	if err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
