package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ValidationError, "Address is required", "address must not be blank")
	assert.Equal(t, "VALIDATION_ERROR: Address is required (address must not be blank)", err.Error())

	err = New(NotFoundError, "Location not found", "")
	assert.Equal(t, "NOT_FOUND: Location not found", err.Error())
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name    string
		errType ErrorType
		want    int
	}{
		{"validation maps to 400", ValidationError, http.StatusBadRequest},
		{"not found maps to 404", NotFoundError, http.StatusNotFound},
		{"upstream maps to 502", UpstreamError, http.StatusBadGateway},
		{"configuration maps to 500", ConfigurationError, http.StatusInternalServerError},
		{"database maps to 500", DatabaseError, http.StatusInternalServerError},
		{"server maps to 500", ServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.errType, "msg", "").GetHTTPStatus())
		})
	}
}

func TestUpstream(t *testing.T) {
	err := Upstream("Weather", http.StatusServiceUnavailable)
	assert.Equal(t, UpstreamError, err.Type)
	assert.Equal(t, http.StatusServiceUnavailable, err.UpstreamStatus)
	assert.Equal(t, "Weather API error: 503", err.Message)
}

func TestMissingCredential(t *testing.T) {
	err := MissingCredential("openweathermap")
	assert.Equal(t, ConfigurationError, err.Type)
	assert.Contains(t, err.Message, "openweathermap")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, DatabaseError, "should be nil"))

	raw := errors.New("connection refused")
	err := Wrap(raw, DatabaseError, "insert failed")
	assert.Equal(t, DatabaseError, err.Type)
	assert.Equal(t, "connection refused", err.Detail)
	assert.ErrorIs(t, err, raw)
}
