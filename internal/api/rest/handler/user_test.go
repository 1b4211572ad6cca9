package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beginnergain/server/internal/model"
	"github.com/beginnergain/server/internal/testutil"
)

type fakeUserService struct {
	createFn  func(ctx context.Context, params model.CreateUserParams) (model.User, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (model.User, error)
	loginFn   func(ctx context.Context, email, password string) (model.User, string, error)
}

func (f *fakeUserService) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	return f.createFn(ctx, params)
}

func (f *fakeUserService) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func TestUser_Register(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		service    *fakeUserService
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":"new@example.com","password":"secret","name":"New User"}`,
			service: &fakeUserService{
				createFn: func(_ context.Context, params model.CreateUserParams) (model.User, error) {
					return model.User{ID: userID, Email: params.Email, Name: params.Name}, nil
				},
			},
			wantStatus: http.StatusCreated,
			wantBody:   fmt.Sprintf(`{"id":"%s","email":"new@example.com","name":"New User"}`, userID),
		},
		{
			name: "duplicate email",
			body: `{"email":"taken@example.com","password":"secret","name":"Dup"}`,
			service: &fakeUserService{
				createFn: func(_ context.Context, _ model.CreateUserParams) (model.User, error) {
					return model.User{}, fmt.Errorf("User: Create: %w", model.ErrEmailTaken)
				},
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"email is already taken"}`,
		},
		{
			name:       "missing fields",
			body:       `{"email":"","password":"secret","name":"X"}`,
			service:    &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"email, password and name are required"}`,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			service:    &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUser(tt.service, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestUser_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		service    *fakeUserService
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":"one@example.com","password":"secret"}`,
			service: &fakeUserService{
				loginFn: func(_ context.Context, email, _ string) (model.User, string, error) {
					return model.User{ID: userID, Email: email, Name: "One"}, "signed-token", nil
				},
			},
			wantStatus: http.StatusOK,
			wantBody: fmt.Sprintf(
				`{"id":"%s","email":"one@example.com","name":"One","accessToken":"signed-token"}`, userID),
		},
		{
			name: "unknown email",
			body: `{"email":"missing@example.com","password":"secret"}`,
			service: &fakeUserService{
				loginFn: func(_ context.Context, _, _ string) (model.User, string, error) {
					return model.User{}, "", fmt.Errorf("User: Login: %w", model.ErrNotFound)
				},
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
		{
			name: "wrong password",
			body: `{"email":"one@example.com","password":"wrong"}`,
			service: &fakeUserService{
				loginFn: func(_ context.Context, _, _ string) (model.User, string, error) {
					return model.User{}, "", fmt.Errorf("User: Login: %w", model.ErrInvalidCredentials)
				},
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:       "empty password",
			body:       `{"email":"one@example.com","password":""}`,
			service:    &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"email and password are required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUser(tt.service, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestUser_GetByID(t *testing.T) {
	userID := uuid.New()

	service := &fakeUserService{
		getByIDFn: func(_ context.Context, id uuid.UUID) (model.User, error) {
			if id == userID {
				return model.User{ID: userID, Email: "one@example.com", Name: "One", PasswordHash: "hash"}, nil
			}
			return model.User{}, fmt.Errorf("User: GetByID: %w", model.ErrNotFound)
		},
	}
	h := NewUser(service, testutil.MakeNoopLogger())

	router := chi.NewRouter()
	router.Get("/user/{userID}", h.GetByID)

	t.Run("found, hash never leaks", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/"+userID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"id":"%s","email":"one@example.com","name":"One"}`, userID), rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/not-a-uuid", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
