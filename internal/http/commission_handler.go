package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/energyportfolio/crm-service/internal/http/middleware"
)

func (h *Handler) listCommissions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	clientID, ok := pathID(c)
	if !ok {
		return
	}
	utility := strings.TrimSpace(c.Query("utility"))
	if utility == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "utility query parameter is required"})
		return
	}

	tiers, err := h.commissions.List(c.Request.Context(), principal, clientID, utility)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": tiers})
}

func (h *Handler) createCommission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req commissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier, err := h.commissions.Create(c.Request.Context(), principal, req.Utility, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tier)
}

func (h *Handler) updateCommission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req commissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tier := req.toModel()
	tier.ID = id

	if err := h.commissions.Update(c.Request.Context(), principal, req.Utility, tier); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tier)
}

func (h *Handler) deleteCommission(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	utility := strings.TrimSpace(c.Query("utility"))
	if utility == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "utility query parameter is required"})
		return
	}
	clientID, err := parseInt64(c.Query("client_id"))
	if err != nil || clientID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
		return
	}

	if err := h.commissions.Delete(c.Request.Context(), principal, clientID, utility, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "commission deleted"})
}
