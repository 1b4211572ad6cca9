package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcontext "github.com/beginnergain/server/internal/api/rest/context"
	"github.com/beginnergain/server/internal/mocks"
	"github.com/beginnergain/server/internal/testutil"
)

func TestIdentity_Handle(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		setupRequest func(r *http.Request)
		setupMock    func(tm *mocks.TokenManager)
		wantUser     uuid.UUID
		wantResolved bool
	}{
		{
			name: "valid access cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: userID.String()})
			},
			wantUser:     userID,
			wantResolved: true,
		},
		{
			name: "malformed access cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "not-a-uuid"})
			},
			wantResolved: false,
		},
		{
			name: "valid bearer token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer valid-token")
			},
			setupMock: func(tm *mocks.TokenManager) {
				tm.On("ParseAccessToken", "valid-token").Return(userID, nil)
			},
			wantUser:     userID,
			wantResolved: true,
		},
		{
			name: "invalid bearer token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer expired-token")
			},
			setupMock: func(tm *mocks.TokenManager) {
				tm.On("ParseAccessToken", "expired-token").Return(uuid.Nil, errors.New("token expired"))
			},
			wantResolved: false,
		},
		{
			name:         "no credentials",
			setupRequest: func(r *http.Request) {},
			wantResolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenManager := mocks.NewTokenManager(t)
			if tt.setupMock != nil {
				tt.setupMock(tokenManager)
			}
			contextManager := appcontext.NewManager()
			m := NewIdentity(tokenManager, contextManager, testutil.MakeNoopLogger())

			var gotUser uuid.UUID
			var gotResolved bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotResolved = contextManager.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/project/", nil)
			tt.setupRequest(req)
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantResolved, gotResolved)
			if tt.wantResolved {
				assert.Equal(t, tt.wantUser, gotUser)
			}
		})
	}
}

func TestIdentity_Require(t *testing.T) {
	contextManager := appcontext.NewManager()
	m := NewIdentity(mocks.NewTokenManager(t), contextManager, testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects anonymous request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/project/id/document", nil)
		rec := httptest.NewRecorder()

		m.Require(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	})

	t.Run("passes authenticated request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/project/id/document", nil)
		req = req.WithContext(contextManager.SetUserIDToContext(req.Context(), uuid.New()))
		rec := httptest.NewRecorder()

		m.Require(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
