package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
		isEmpty bool
	}{
		{name: "valid", body: `{"name":"Algebra"}`},
		{name: "empty", body: "", wantErr: true, isEmpty: true},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "trailing object", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := shared.DecodeJSON(req, &p)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Algebra", p.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.isEmpty, errors.Is(err, shared.ErrEmptyBody))
		})
	}
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(payload{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field())

	assert.NoError(t, shared.ValidateRequest(payload{Name: "ok"}))
}

func TestTokenSubject(t *testing.T) {
	t.Parallel()

	_, ok := shared.TokenSubject(context.Background())
	assert.False(t, ok)

	ctx := shared.WithTokenSubject(context.Background(), "plan-owner")
	subject, ok := shared.TokenSubject(ctx)
	assert.True(t, ok)
	assert.Equal(t, "plan-owner", subject)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()
	ctx := shared.SetTraceID(logger.WithLogger(context.Background(), log))
	req := httptest.NewRequest(http.MethodGet, "/api/subjects", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	shared.RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to list subjects",
		errors.New("dial postgres://planner:hunter2@db:5432/planner"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to list subjects", body.Error)
	assert.Equal(t, shared.GetTraceID(ctx), body.TraceID)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.NotContains(t, out, "hunter2")
}
