package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"extending", apperror.ErrExtending, http.StatusConflict, "there is an overlapping screening"},
		{"break period", apperror.ErrBreakPeriod, http.StatusConflict, apperror.ErrBreakPeriod.Message},
		{"not found both", apperror.NotFound(apperror.SubjectBoth), http.StatusNotFound, "the given movie and room do not exist"},
		{"wrapped in use", fmt.Errorf("delete: %w", apperror.InUse(apperror.SubjectRoom, "busy")), http.StatusConflict, "busy"},
		{"validation", apperror.Validation("bad"), http.StatusBadRequest, "bad"},
		{"invalid slot", apperror.ErrInvalidSlot, http.StatusBadRequest, "a screening must end after it starts"},
		{"foreign error", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			var body struct {
				Status  bool   `json:"status"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
