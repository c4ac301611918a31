package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"travelapp/internal/domain"
	"travelapp/internal/http/middleware"
	"travelapp/internal/utils"
)

func respondError(c *gin.Context, status int, code, message string, extra gin.H) {
	if code == "" {
		code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	body := gin.H{
		"message":    message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondDomainError maps domain errors to HTTP responses. Internal causes are
// logged and never sent to the client.
func RespondDomainError(c *gin.Context, err error) {
	respondDomainError(c, err, nil)
}

func respondDomainError(c *gin.Context, err error, extra gin.H) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), extra)
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), extra)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), extra)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", conflictMessage(err), extra)
	case domain.IsGateway(err):
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), "payment gateway failure", err)
		respondError(c, http.StatusBadGateway, "gateway_error", "payment gateway unavailable, please retry", extra)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), "request failed", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", extra)
	}
}

func conflictMessage(err error) string {
	var ce domain.ConflictError
	if errors.As(err, &ce) && ce.Msg != "" {
		return ce.Msg
	}
	return "resource already exists"
}

// respondBindError turns a Gin binding failure into a 400 naming the first bad field.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		respondError(c, http.StatusBadRequest, "validation_error", fieldMessage(fe), gin.H{"field": fe.Field()})
		return
	}
	respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request body", nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt", "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
