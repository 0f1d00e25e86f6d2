package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/upstream"
)

type OnboardingHandler struct {
	client *upstream.Client
}

func NewOnboardingHandler(client *upstream.Client) *OnboardingHandler {
	return &OnboardingHandler{client: client}
}

func (h *OnboardingHandler) Send(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.SendOnboarding(c.Request.Context(), token, payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"sent": true})
}

func (h *OnboardingHandler) GetForJobSeeker(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	data, err := h.client.GetOnboarding(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *OnboardingHandler) UpdateForJobSeeker(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client.UpdateOnboarding(c.Request.Context(), token, c.Param("id"), payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *OnboardingHandler) GetItem(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	item, err := h.client.GetOnboardingItem(c.Request.Context(), token, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *OnboardingHandler) ApproveItem(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	if err := h.client.ApproveOnboardingItem(c.Request.Context(), token, c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

func (h *OnboardingHandler) RejectItem(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	var req upstream.RejectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	if err := h.client.RejectOnboardingItem(c.Request.Context(), token, c.Param("itemId"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rejected": true})
}

func (h *OnboardingHandler) ListPackets(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	packets, err := h.client.ListPackets(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, packets)
}
