package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/softhouse/customers/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOccurrence(t *testing.T) {
	occ := NewOccurrence(KindResourceNotFound, "Customer 1 not found", "Customer 1 not found")

	assert.Equal(t, "Resource not found", occ.Title)
	assert.Equal(t, "https://customers.softhouse.dev/resource-not-found", occ.Type)
	assert.Equal(t, http.StatusNotFound, occ.Status)
	assert.Equal(t, "Customer 1 not found", occ.Detail)
	assert.False(t, occ.Timestamp.IsZero())
}

func TestOccurrence_JSONShape(t *testing.T) {
	occ := NewOccurrence(KindInvalidData,
		"There are one or more invalid properties. Please correct and try again.",
		"There are one or more invalid properties. Please correct and try again.").
		WithDescriptions([]FieldDescription{{Name: "name", UserMessage: "name is required"}})

	data, err := json.Marshal(occ)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "title")
	assert.Contains(t, decoded, "type")
	assert.Contains(t, decoded, "status")
	assert.Contains(t, decoded, "detail")
	assert.Contains(t, decoded, "userMessage")
	assert.Contains(t, decoded, "descriptions")
	assert.Contains(t, decoded, "timestamp")

	descriptions := decoded["descriptions"].([]any)
	require.Len(t, descriptions, 1)
	first := descriptions[0].(map[string]any)
	assert.Equal(t, "name", first["name"])
	assert.Equal(t, "name is required", first["userMessage"])
}

func TestOccurrence_OmitsEmptyDescriptions(t *testing.T) {
	occ := NewOccurrence(KindSystemError, UserMessageGenericError, UserMessageGenericError)

	data, err := json.Marshal(occ)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "descriptions")
}

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        *shared.DomainError
		wantKind   Kind
		wantDetail string
	}{
		{
			name:       "not found maps to resource not found",
			err:        shared.NewDomainError("NOT_FOUND", "Customer 42 not found"),
			wantKind:   KindResourceNotFound,
			wantDetail: "Customer 42 not found",
		},
		{
			name:       "entity in use maps to conflict",
			err:        shared.NewDomainError("ENTITY_IN_USE", "Customer id 3 in use, cannot be removed"),
			wantKind:   KindEntityInUse,
			wantDetail: "Customer id 3 in use, cannot be removed",
		},
		{
			name:       "other domain errors map to business rules violation",
			err:        shared.NewDomainError("BUSINESS_RULE", "Postal code 99999-999 does not exist"),
			wantKind:   KindBusinessRuleViolation,
			wantDetail: "Postal code 99999-999 does not exist",
		},
		{
			name:       "invalid input maps to business rules violation",
			err:        shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty"),
			wantKind:   KindBusinessRuleViolation,
			wantDetail: "Customer name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := FromDomainError(tt.err)
			assert.Equal(t, tt.wantKind.Title, occ.Title)
			assert.Equal(t, tt.wantKind.Type, occ.Type)
			assert.Equal(t, tt.wantKind.Status, occ.Status)
			assert.Equal(t, tt.wantDetail, occ.Detail)
			assert.Equal(t, tt.wantDetail, occ.UserMessage)
		})
	}
}

func TestSystemErrorOccurrence(t *testing.T) {
	occ := SystemErrorOccurrence()

	assert.Equal(t, http.StatusInternalServerError, occ.Status)
	assert.Equal(t, UserMessageGenericError, occ.Detail)
	assert.Equal(t, UserMessageGenericError, occ.UserMessage)
}
