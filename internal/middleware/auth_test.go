package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackboard/internal/domain"
	"hackboard/pkg/errors"
	"hackboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	claims *domain.AuthClaims
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error) {
	if s.claims == nil {
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}
	return s.claims, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		claims         *domain.AuthClaims
		expectedStatus int
	}{
		{
			name:           "valid token passes claims through",
			header:         "Bearer good-token",
			claims:         &domain.AuthClaims{Sub: "s-01", Role: "student"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer bad-token",
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawClaims *domain.AuthClaims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sawClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := Auth(&stubAuthService{claims: tt.claims}, testLogger(t))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/events/hack-2026/votes/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				require.NotNil(t, sawClaims)
				assert.Equal(t, "s-01", sawClaims.Sub)
			} else {
				assert.Nil(t, sawClaims)
			}
		})
	}
}

func TestRequireOperator(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.AuthClaims
		expectedStatus int
	}{
		{
			name:           "operator allowed",
			claims:         &domain.AuthClaims{Sub: "op-01", Role: "operator"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "student rejected",
			claims:         &domain.AuthClaims{Sub: "s-01", Role: "student"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "jury rejected",
			claims:         &domain.AuthClaims{Sub: "j-01", Role: "jury"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no claims rejected",
			claims:         nil,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			mw := RequireOperator(testLogger(t))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/events/hack-2026/finalize", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ClaimsContextKey, tt.claims))
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
