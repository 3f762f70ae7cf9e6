package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

func httpStatusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConsistency:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

func handleServiceError(c *gin.Context, err error) {
	var appErr *services.Error
	if errors.As(err, &appErr) {
		utils.JSONError(c, httpStatusFor(appErr.Kind), appErr.Code, appErr.Message)
		return
	}
	log.Printf("unclassified error: %v", err)
	utils.JSONError(c, http.StatusServiceUnavailable, services.CodeStoreUnavailable, "store unavailable")
}

// parseDate accepts "2006-01-02" (what the frontend sends) or RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
