package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped not found", fmt.Errorf("request delete: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"mutation in flight", attendance.ErrMutationInFlight, http.StatusConflict, "CONFLICT"},
		{"toggle in flight", attendance.ErrToggleInFlight, http.StatusConflict, "CONFLICT"},
		{"bad bucket", dashboard.ErrInvalidBucket, http.StatusBadRequest, "BAD_REQUEST"},
		{"timeout", &apiclient.Error{Kind: apiclient.KindTimeout}, http.StatusGatewayTimeout, "GATEWAY_TIMEOUT"},
		{"network", &apiclient.Error{Kind: apiclient.KindNetwork}, http.StatusBadGateway, "BAD_GATEWAY"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, tc.wantCode, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantErr, body.Error.Code)
		})
	}
}

func TestIsGuard(t *testing.T) {
	assert.True(t, IsGuard(employee.ErrMutationInFlight))
	assert.True(t, IsGuard(fmt.Errorf("wrap: %w", dashboard.ErrSummaryNotReady)))
	assert.False(t, IsGuard(attendance.ErrInvalidDateRange))
	assert.False(t, IsGuard(&apiclient.Error{Kind: apiclient.KindConflict}))
	assert.False(t, IsGuard(nil))
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMessage(rec, "ok", map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"ok","data":{"n":1}}`, rec.Body.String())
}
