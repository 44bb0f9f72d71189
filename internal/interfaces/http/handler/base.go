package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/softhouse/customers/internal/domain/shared"
	"github.com/softhouse/customers/internal/infrastructure/logger"
	"github.com/softhouse/customers/internal/interfaces/http/dto"
	"github.com/softhouse/customers/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Occurrence writes an error envelope with its own status code
func (h *BaseHandler) Occurrence(c *gin.Context, occ *dto.Occurrence) {
	c.JSON(occ.Status, occ)
}

// NotFound sends a resource-not-found envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Occurrence(c, dto.NewOccurrence(dto.KindResourceNotFound, message, message))
}

// SystemError logs the cause and sends the generic system-error
// envelope. The cause is never exposed to the client.
func (h *BaseHandler) SystemError(c *gin.Context, err error) {
	logger.FromGin(c).Error("unhandled error", zap.Error(err))
	h.Occurrence(c, dto.SystemErrorOccurrence())
}

// HandleError converts domain errors to their envelopes and everything
// else to a system error
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Occurrence(c, dto.FromDomainError(domainErr))
		return
	}

	h.SystemError(c, err)
}

// BindingError classifies a request binding failure and writes the
// matching envelope: invalid property values produce an invalid-data
// envelope with per-field descriptions, while malformed JSON produces
// an incomprehensible-message envelope.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		detail := "There are one or more invalid properties. Please correct and try again."
		h.Occurrence(c, dto.NewOccurrence(dto.KindInvalidData, detail, detail).
			WithDescriptions(middleware.FormatValidationErrors(validationErrors)))
		return
	}

	syntaxDetail := "The request body is invalid. Please check syntax error and try again."

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(body)"
		}
		detail := fmt.Sprintf("The property '%s' received the value of an invalid type. Correct to a value of type '%s'.",
			field, typeErr.Type.String())
		h.Occurrence(c, dto.NewOccurrence(dto.KindIncomprehensibleMessage, detail, syntaxDetail))
		return
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		h.Occurrence(c, dto.NewOccurrence(dto.KindIncomprehensibleMessage, syntaxDetail, syntaxDetail))
		return
	}

	// The decoder reports unknown properties as a plain error
	if strings.Contains(err.Error(), "unknown field") {
		detail := fmt.Sprintf("The property %s does not exist. Please correct and try again.",
			unknownFieldName(err))
		h.Occurrence(c, dto.NewOccurrence(dto.KindIncomprehensibleMessage, detail, syntaxDetail))
		return
	}

	h.Occurrence(c, dto.NewOccurrence(dto.KindIncomprehensibleMessage, syntaxDetail, syntaxDetail))
}

// unknownFieldName extracts the property name from a decoder error of
// the form `json: unknown field "x"`
func unknownFieldName(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, `"`); idx >= 0 {
		return strings.Trim(msg[idx:], `"`)
	}
	return "(unknown)"
}

// ParseID reads the numeric id path parameter. A non-numeric value
// writes an invalid-param envelope and reports failure.
func (h *BaseHandler) ParseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		detail := fmt.Sprintf("The value '%s' received as URL parameter '%s' is of an invalid type. Correct to a value of type '%s'.",
			raw, name, "int")
		h.Occurrence(c, dto.NewOccurrence(dto.KindInvalidParam, detail, detail))
		return 0, false
	}
	return id, true
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
