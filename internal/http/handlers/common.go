package handlers

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"travelapp/internal/domain"
	"travelapp/internal/http/middleware"
)

// UseJSONFieldNames makes validation messages name the JSON field instead of the Go field.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "invalid " + name})
		return 0, false
	}
	return id, true
}

// mustUser returns the caller set by AuthRequired.
func mustUser(c *gin.Context) (domain.RequestContext, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.UserID <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided"})
		return domain.RequestContext{}, false
	}
	return user, true
}
