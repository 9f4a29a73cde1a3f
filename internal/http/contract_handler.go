package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/energyportfolio/crm-service/internal/http/middleware"
	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := req.toModel()
	if err != nil {
		h.handleError(c, err)
		return
	}

	created, err := h.contracts.Create(c.Request.Context(), principal, contract)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := req.toModel()
	if err != nil {
		h.handleError(c, err)
		return
	}
	contract.ID = id

	updated, err := h.contracts.Update(c.Request.Context(), principal, contract)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.contracts.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	filter := repository.ContractFilter{
		Status:       model.ContractStatus(strings.TrimSpace(c.Query("status"))),
		ContractType: model.ContractType(strings.TrimSpace(c.Query("type"))),
		UtilityName:  strings.TrimSpace(c.Query("utility")),
		SupplierName: strings.TrimSpace(c.Query("supplier")),
		IsOOC:        model.YesNo(strings.ToUpper(strings.TrimSpace(c.Query("is_ooc")))),
	}
	if raw := c.Query("client_id"); raw != "" {
		id, err := parseInt64(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
			return
		}
		filter.ClientID = id
	}

	details, err := h.contracts.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": details})
}

func (h *Handler) listSuppliers(c *gin.Context) {
	suppliers, err := h.contracts.Suppliers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func (h *Handler) listUtilities(c *gin.Context) {
	utilities, err := h.contracts.Utilities(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"utilities": utilities})
}

type notesRequest struct {
	Notes *string `json:"notes"`
}

func (h *Handler) updateContractNotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contracts.UpdateNotes(c.Request.Context(), principal, id, req.Notes); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notes updated"})
}

func (h *Handler) contractPDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.contracts.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.exports.ContractPDF(c.Request.Context(), principal, *detail)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypePDF, result)
}
