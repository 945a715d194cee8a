package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("dataset collection")
	assert.Equal(t, "NOT_FOUND: dataset collection not found", err.Error())

	wrapped := Internal("load failed").WithError(fmt.Errorf("boom"))
	assert.Equal(t, "INTERNAL_ERROR: load failed (boom)", wrapped.Error())
}

func TestClassification_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("serialize hdca: %w", Configuration("unknown view: huge"))

	assert.True(t, IsConfiguration(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(err))
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("x"), http.StatusNotFound},
		{"forbidden", Forbidden(""), http.StatusForbidden},
		{"conflict", Conflict("purged"), http.StatusConflict},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"plain error", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStatusCode(tt.err))
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := Conflict("cannot undelete").WithDetail("state", "purged")
	assert.Equal(t, "purged", err.Details["state"])
	assert.Equal(t, "", Forbidden("").Details["state"])
	assert.Equal(t, "forbidden", Forbidden("").Message)
}
