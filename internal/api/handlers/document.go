package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/tableview"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

type DocumentHandler struct {
	client  *upstream.Client
	schemas *schemaLoader
}

func NewDocumentHandler(client *upstream.Client, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{
		client:  client,
		schemas: &schemaLoader{client: client, logger: logger},
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	records, err := h.client.ListTemplateDocuments(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	cat := h.schemas.catalog(c.Request.Context(), token, catalog.EntityTemplateDocument)
	rows := tableview.Apply(records, parseQuery(c), cat, tableview.ArchiveIgnore)

	c.JSON(http.StatusOK, gin.H{"records": rows, "total": len(rows)})
}

func (h *DocumentHandler) Create(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req upstream.TemplateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.CreateTemplateDocument(c.Request.Context(), token, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": true})
}
