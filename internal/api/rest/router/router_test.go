package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcontext "github.com/beginnergain/server/internal/api/rest/context"
	"github.com/beginnergain/server/internal/api/rest/router"
	"github.com/beginnergain/server/internal/model"
	"github.com/beginnergain/server/internal/service"
	"github.com/beginnergain/server/internal/testutil"
	"github.com/beginnergain/server/internal/token"
)

type memoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memoryUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memoryUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return user, nil
}

type memoryProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]model.Project
	order    []uuid.UUID
}

func newMemoryProjectStore() *memoryProjectStore {
	return &memoryProjectStore{projects: make(map[uuid.UUID]model.Project)}
}

func (s *memoryProjectStore) Create(_ context.Context, project model.Project) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project
	s.order = append(s.order, project.ID)
	return project, nil
}

func (s *memoryProjectStore) GetByID(_ context.Context, id uuid.UUID) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.DeletedAt != nil {
		return model.Project{}, model.ErrNotFound
	}
	return p, nil
}

func (s *memoryProjectStore) all() []model.Project {
	out := make([]model.Project, 0, len(s.order))
	for _, id := range s.order {
		p := s.projects[id]
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *memoryProjectStore) GetAll(_ context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all(), nil
}

func (s *memoryProjectStore) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, 0)
	for _, p := range s.all() {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryProjectStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.DeletedAt != nil {
		return model.ErrNotFound
	}
	now := p.CreatedAt
	p.DeletedAt = &now
	s.projects[id] = p
	return nil
}

func (s *memoryProjectStore) SetDocumentKey(_ context.Context, id uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.DeletedAt != nil {
		return model.ErrNotFound
	}
	p.DocumentKey = key
	s.projects[id] = p
	return nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memoryStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := testutil.MakeNoopLogger()
	userStore := newMemoryUserStore()
	projectStore := newMemoryProjectStore()
	tokenManager := token.NewJWT("test-secret")
	contextManager := appcontext.NewManager()

	userService := service.NewUser(userStore, tokenManager, log)
	projectService := service.NewProject(projectStore, userStore, newMemoryStorage(), log)

	r := router.New(userService, projectService, tokenManager, contextManager, log)
	ts := httptest.NewServer(r.Register())
	t.Cleanup(ts.Close)

	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestRouter_registerLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/user/register",
		`{"email":"founder@example.com","password":"hunter22","name":"Founder"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userID := body["id"].(string)
	assert.Equal(t, "founder@example.com", body["email"])
	assert.NotContains(t, body, "passwordHash")

	resp, body = postJSON(t, ts.URL+"/user/register",
		`{"email":"founder@example.com","password":"other","name":"Copycat"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email is already taken", body["error"])

	resp, body = postJSON(t, ts.URL+"/user/login",
		`{"email":"nobody@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/user/login",
		`{"email":"founder@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/user/login",
		`{"email":"founder@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, body["id"])
	assert.NotEmpty(t, body["accessToken"])

	getResp, err := http.Get(ts.URL + "/user/" + userID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestRouter_projectLifecycle(t *testing.T) {
	ts := newTestServer(t)

	_, body := postJSON(t, ts.URL+"/user/register",
		`{"email":"maker@example.com","password":"hunter22","name":"Maker"}`)
	userID := body["id"].(string)

	resp, body := postJSON(t, ts.URL+"/project/",
		fmt.Sprintf(`{"userId":"%s","name":"First","description":"one"}`, userID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	firstID := body["id"].(string)

	resp, _ = postJSON(t, ts.URL+"/project/",
		fmt.Sprintf(`{"userId":"%s","name":"Second","description":"two"}`, userID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/project/",
		fmt.Sprintf(`{"userId":"%s","name":"Orphan"}`, uuid.NewString()))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "userId must reference an existing user", body["error"])

	listResp, err := http.Get(ts.URL + "/project/")
	require.NoError(t, err)
	defer listResp.Body.Close()
	var projects []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "First", projects[0]["name"])
	assert.Equal(t, "Second", projects[1]["name"])

	byUserResp, err := http.Get(ts.URL + "/project/user/" + uuid.NewString())
	require.NoError(t, err)
	defer byUserResp.Body.Close()
	var empty []map[string]any
	require.NoError(t, json.NewDecoder(byUserResp.Body).Decode(&empty))
	assert.Empty(t, empty)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/project/"+firstID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	// Deleting the same project again is not idempotent.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/project/"+firstID, nil)
	delResp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, delResp2.StatusCode)

	getResp, err := http.Get(ts.URL + "/project/" + firstID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestRouter_documentEndpointsRequireIdentity(t *testing.T) {
	ts := newTestServer(t)

	_, body := postJSON(t, ts.URL+"/user/register",
		`{"email":"writer@example.com","password":"hunter22","name":"Writer"}`)
	userID := body["id"].(string)

	_, body = postJSON(t, ts.URL+"/project/",
		fmt.Sprintf(`{"userId":"%s","name":"Documented"}`, userID))
	projectID := body["id"].(string)

	docURL := ts.URL + "/project/" + projectID + "/document"

	req, _ := http.NewRequest(http.MethodPut, docURL, bytes.NewBufferString("# Plan"))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodPut, docURL, bytes.NewBufferString("# Plan"))
	req.AddCookie(&http.Cookie{Name: "accessId", Value: userID})
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodGet, docURL, nil)
	req.AddCookie(&http.Cookie{Name: "accessId", Value: userID})
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "# Plan", string(data))

	// A bearer token works where no cookie is present.
	loginResp, loginBody := postJSON(t, ts.URL+"/user/login",
		`{"email":"writer@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	accessToken := loginBody["accessToken"].(string)

	req, _ = http.NewRequest(http.MethodGet, docURL, nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
