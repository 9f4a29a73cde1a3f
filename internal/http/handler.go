package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type Handler struct {
	users         *service.UserService
	clients       *service.ClientService
	contracts     *service.ContractService
	commissions   *service.CommissionService
	objections    *service.ObjectionService
	contacts      *service.ContactService
	exports       *service.ExportService
	meterReadings *service.MeterReadingService
	log           zerolog.Logger
}

func NewHandler(
	users *service.UserService,
	clients *service.ClientService,
	contracts *service.ContractService,
	commissions *service.CommissionService,
	objections *service.ObjectionService,
	contacts *service.ContactService,
	exports *service.ExportService,
	meterReadings *service.MeterReadingService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		users:         users,
		clients:       clients,
		contracts:     contracts,
		commissions:   commissions,
		objections:    objections,
		contacts:      contacts,
		exports:       exports,
		meterReadings: meterReadings,
		log:           log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)
	router.POST("/auth/register", h.register)
	router.GET("/auth/activate/:token", h.activate)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/users", h.listUsers)

	protected.POST("/clients", h.createClient)
	protected.GET("/clients", h.listClients)
	protected.GET("/clients/:id", h.getClient)
	protected.PUT("/clients/:id", h.updateClient)
	protected.GET("/clients/:id/contacts", h.listClientContacts)
	protected.GET("/clients/:id/commissions", h.listCommissions)

	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.PATCH("/contracts/:id/notes", h.updateContractNotes)
	protected.GET("/contracts/:id/pdf", h.contractPDF)

	protected.GET("/suppliers", h.listSuppliers)
	protected.GET("/utilities", h.listUtilities)

	protected.POST("/commissions", h.createCommission)
	protected.PUT("/commissions/:id", h.updateCommission)
	protected.DELETE("/commissions/:id", h.deleteCommission)

	protected.POST("/objections", h.createObjection)
	protected.GET("/objections", h.listObjections)
	protected.GET("/objections/:id", h.getObjection)
	protected.PUT("/objections/:id", h.updateObjection)

	protected.POST("/contacts", h.createContact)
	protected.GET("/contacts/:id", h.getContact)
	protected.PUT("/contacts/:id", h.updateContact)
	protected.DELETE("/contacts/:id", h.deleteContact)
	protected.GET("/job-titles", h.listJobTitles)
	protected.POST("/job-titles", h.createJobTitle)

	protected.POST("/exports/bulk-quote", h.exportBulkQuote)
	protected.POST("/exports/commissions", h.exportCommissions)
	protected.POST("/exports/duplicates", h.exportDuplicates)
	protected.POST("/exports/expired", h.exportExpired)
	protected.POST("/exports/status", h.exportStatus)

	protected.POST("/meter-readings", h.submitMeterReading)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func sendFile(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func userResponse(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"is_active":  user.IsActive,
	}
}
