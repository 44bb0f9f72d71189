package dto

import (
	"net/http"
	"time"

	"github.com/softhouse/customers/internal/domain/shared"
)

const typeBaseURL = "https://customers.softhouse.dev"

// UserMessageGenericError is the only message exposed for unexpected
// failures; the real cause is logged, never sent to the client.
const UserMessageGenericError = "Internal error occurred. Check the problem and try again."

// Kind classifies an error response. Every error payload carries the
// kind's title, type URI and HTTP status.
type Kind struct {
	Title  string
	Type   string
	Status int
}

var (
	KindResourceNotFound = Kind{
		Title:  "Resource not found",
		Type:   typeBaseURL + "/resource-not-found",
		Status: http.StatusNotFound,
	}
	KindEntityInUse = Kind{
		Title:  "Entity in use",
		Type:   typeBaseURL + "/entity-in-use",
		Status: http.StatusConflict,
	}
	KindBusinessRuleViolation = Kind{
		Title:  "Business rules violation",
		Type:   typeBaseURL + "/business-rules-violation",
		Status: http.StatusBadRequest,
	}
	KindInvalidData = Kind{
		Title:  "Invalid data",
		Type:   typeBaseURL + "/invalid-data",
		Status: http.StatusBadRequest,
	}
	KindInvalidParam = Kind{
		Title:  "Invalid parameter",
		Type:   typeBaseURL + "/invalid-param",
		Status: http.StatusBadRequest,
	}
	KindIncomprehensibleMessage = Kind{
		Title:  "Incomprehensible message",
		Type:   typeBaseURL + "/incomprehensible-msg",
		Status: http.StatusBadRequest,
	}
	KindSystemError = Kind{
		Title:  "System error",
		Type:   typeBaseURL + "/system-error",
		Status: http.StatusInternalServerError,
	}
)

// FieldDescription details one invalid property of a request payload.
type FieldDescription struct {
	Name        string `json:"name"`
	UserMessage string `json:"userMessage"`
}

// Occurrence is the error response envelope. Success responses never
// carry it; every non-2xx response carries exactly one.
type Occurrence struct {
	Title        string             `json:"title"`
	Type         string             `json:"type"`
	Status       int                `json:"status"`
	Detail       string             `json:"detail,omitempty"`
	UserMessage  string             `json:"userMessage"`
	Descriptions []FieldDescription `json:"descriptions,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
}

// NewOccurrence builds an error envelope of the given kind. The detail
// is developer-facing; userMessage is safe to show to an end user.
func NewOccurrence(kind Kind, detail, userMessage string) *Occurrence {
	return &Occurrence{
		Title:       kind.Title,
		Type:        kind.Type,
		Status:      kind.Status,
		Detail:      detail,
		UserMessage: userMessage,
		Timestamp:   time.Now(),
	}
}

// WithDescriptions attaches per-field diagnostics to the envelope
func (o *Occurrence) WithDescriptions(descriptions []FieldDescription) *Occurrence {
	o.Descriptions = descriptions
	return o
}

// FromDomainError maps a domain error to its error envelope.
func FromDomainError(err *shared.DomainError) *Occurrence {
	switch err.Code {
	case "NOT_FOUND":
		return NewOccurrence(KindResourceNotFound, err.Message, err.Message)
	case "ENTITY_IN_USE":
		return NewOccurrence(KindEntityInUse, err.Message, err.Message)
	default:
		return NewOccurrence(KindBusinessRuleViolation, err.Message, err.Message)
	}
}

// SystemErrorOccurrence builds the envelope for unexpected failures.
// It never includes the underlying cause.
func SystemErrorOccurrence() *Occurrence {
	return NewOccurrence(KindSystemError, UserMessageGenericError, UserMessageGenericError)
}
