package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/energyportfolio/crm-service/internal/http/middleware"
	"github.com/energyportfolio/crm-service/internal/mail"
	"github.com/energyportfolio/crm-service/internal/service"
)

// submitMeterReading accepts a multipart form: contract_id, one or more
// reading fields, meter_reading_date, and an optional attachment (a photo
// of the meter).
func (h *Handler) submitMeterReading(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contractID, err := parseInt64(c.PostForm("contract_id"))
	if err != nil || contractID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	readings := collectReadings(c)
	input := service.MeterReadingInput{
		ContractID:  contractID,
		Readings:    readings,
		ReadingDate: strings.TrimSpace(c.PostForm("meter_reading_date")),
	}

	if header, err := c.FormFile("attachment"); err == nil {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable attachment"})
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable attachment"})
			return
		}
		input.Attachment = &mail.Attachment{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	if err := h.meterReadings.Submit(c.Request.Context(), principal, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "your meter reading has been received"})
}

func collectReadings(c *gin.Context) []mail.ReadingValue {
	fields := []struct {
		form  string
		label string
	}{
		{"meter_reading", "Meter Reading"},
		{"day_normal_meter_reading", "Day/Normal Meter Reading"},
		{"night_low_meter_reading", "Night/Low Meter Reading"},
		{"weekend_other_meter_reading", "Weekend/Other Meter Reading"},
	}

	readings := make([]mail.ReadingValue, 0, len(fields))
	for _, field := range fields {
		if value := strings.TrimSpace(c.PostForm(field.form)); value != "" {
			readings = append(readings, mail.ReadingValue{Label: field.label, Value: value})
		}
	}
	return readings
}
