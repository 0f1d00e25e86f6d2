package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/core/actions"
	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/tableview"
	"github.com/staffdesk/staffdesk/internal/core/validation"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

type JobSeekerHandler struct {
	client     *upstream.Client
	dispatcher *actions.Dispatcher
	validator  *validation.Validator
	schemas    *schemaLoader
}

func NewJobSeekerHandler(client *upstream.Client, dispatcher *actions.Dispatcher, validator *validation.Validator, logger *logrus.Logger) *JobSeekerHandler {
	return &JobSeekerHandler{
		client:     client,
		dispatcher: dispatcher,
		validator:  validator,
		schemas:    &schemaLoader{client: client, logger: logger},
	}
}

func (h *JobSeekerHandler) List(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	archived := c.Query("archived") == "true"
	mode := tableview.ArchiveExclude
	if archived {
		mode = tableview.ArchiveOnly
	}

	records, err := h.client.ListJobSeekers(c.Request.Context(), token, archived)
	if err != nil {
		respondError(c, err)
		return
	}

	cat := h.schemas.catalog(c.Request.Context(), token, catalog.EntityJobSeeker)
	rows := tableview.Apply(records, parseQuery(c), cat, mode)

	c.JSON(http.StatusOK, gin.H{"records": rows, "total": len(rows)})
}

func (h *JobSeekerHandler) Get(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	rec, err := h.client.GetJobSeeker(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *JobSeekerHandler) Update(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := h.schemas.catalog(c.Request.Context(), token, catalog.EntityJobSeeker)
	if err := h.validator.ValidateCustomFields(payload, cat); err != nil {
		respondError(c, err)
		return
	}

	if err := h.client.UpdateJobSeeker(c.Request.Context(), token, c.Param("id"), payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *JobSeekerHandler) Delete(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	if err := h.dispatcher.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Subresource serves one of the related collections of a job seeker
// profile (notes, history, documents, references, applications).
func (h *JobSeekerHandler) Subresource(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := upstreamToken(c)
		if !ok {
			return
		}

		items, err := h.client.ListJobSeekerSubresource(c.Request.Context(), token, c.Param("id"), name)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func (h *JobSeekerHandler) CreateNote(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req upstream.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.CreateJobSeekerNote(c.Request.Context(), token, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": true})
}

// RequestDelete files a deletion request against an archived profile
// instead of deleting it outright.
func (h *JobSeekerHandler) RequestDelete(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req upstream.DeleteRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.CreateDeleteRequest(c.Request.Context(), token, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"requested": true})
}

type BulkIDsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type BulkOwnerRequest struct {
	IDs   []string `json:"ids" binding:"required,min=1"`
	Owner string   `json:"owner" binding:"required"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}

func (h *JobSeekerHandler) BulkDelete(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.dispatcher.BulkDelete(c.Request.Context(), token, req.IDs)
	respondBulk(c, res, "delete")
}

func (h *JobSeekerHandler) BulkChangeOwner(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req BulkOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.dispatcher.BulkChangeOwner(c.Request.Context(), token, req.IDs, req.Owner)
	respondBulk(c, res, "update")
}

func (h *JobSeekerHandler) BulkChangeStatus(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.dispatcher.BulkChangeStatus(c.Request.Context(), token, req.IDs, req.Status)
	respondBulk(c, res, "update")
}

func respondBulk(c *gin.Context, res actions.BulkResult, verb string) {
	body := gin.H{"requested": res.Requested, "failed": res.Failed}
	if err := res.Err(verb); err != nil {
		body["error"] = err.Error()
		body["messages"] = res.Messages
		c.JSON(http.StatusMultiStatus, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
