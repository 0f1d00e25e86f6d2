package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

type AdminHandler struct {
	client *upstream.Client
}

func NewAdminHandler(client *upstream.Client) *AdminHandler {
	return &AdminHandler{client: client}
}

// FieldManagement returns the admin-defined field schema for an entity
// alongside the column catalog derived from it.
func (h *AdminHandler) FieldManagement(c *gin.Context) {
	entity, ok := viewEntities[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}

	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	fields, err := h.client.FieldSchema(c.Request.Context(), token, entity)
	if err != nil {
		respondError(c, err)
		return
	}

	cat := catalog.Build(entity, fields)
	c.JSON(http.StatusOK, gin.H{"fields": fields, "columns": cat.Columns})
}

// DataDownloader is intentionally a dead end. Bulk report rendering
// moved to the export endpoint and this route only points callers there.
func (h *AdminHandler) DataDownloader(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":    "data downloader has been retired",
		"location": "/api/admin/export",
	})
}
