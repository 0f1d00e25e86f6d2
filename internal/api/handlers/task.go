package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/tableview"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

type TaskHandler struct {
	client  *upstream.Client
	schemas *schemaLoader
}

func NewTaskHandler(client *upstream.Client, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		client:  client,
		schemas: &schemaLoader{client: client, logger: logger},
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	records, err := h.client.ListTasks(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	cat := h.schemas.catalog(c.Request.Context(), token, catalog.EntityTask)
	rows := tableview.Apply(records, parseQuery(c), cat, tableview.ArchiveIgnore)

	c.JSON(http.StatusOK, gin.H{"records": rows, "total": len(rows)})
}

func (h *TaskHandler) Update(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.UpdateTask(c.Request.Context(), token, c.Param("id"), payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}
