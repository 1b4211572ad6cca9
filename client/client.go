package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// AccessCookieName is the cookie that carries the logged-in user id.
const AccessCookieName = "accessId"

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// User is the backend's public user projection.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken,omitempty"`
}

// Project mirrors the backend project representation.
type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HasDocument bool      `json:"hasDocument"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Client talks to the backend REST API. The cookie jar keeps the accessId
// cookie across requests, so a logged-in client stays logged in.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates an API client for the backend at baseURL.
func New(baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createProjectRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/user/register",
		registerRequest{Email: email, Password: password, Name: name}, &user)
	return user, err
}

// Login verifies credentials. It does not touch the stored identity; that is
// the session's job.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/user/login",
		loginRequest{Email: email, Password: password}, &user)
	return user, err
}

// GetUser fetches the public projection of a user.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodGet, "/user/"+id.String(), nil, &user)
	return user, err
}

// CreateProject creates a project owned by userID.
func (c *Client) CreateProject(ctx context.Context, userID uuid.UUID, name, description string) (Project, error) {
	var project Project
	err := c.doJSON(ctx, http.MethodPost, "/project/",
		createProjectRequest{UserID: userID.String(), Name: name, Description: description}, &project)
	return project, err
}

// Projects lists every project in creation order.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := c.doJSON(ctx, http.MethodGet, "/project/", nil, &projects)
	return projects, err
}

// ProjectsByUser lists the projects owned by userID.
func (c *Client) ProjectsByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	var projects []Project
	err := c.doJSON(ctx, http.MethodGet, "/project/user/"+userID.String(), nil, &projects)
	return projects, err
}

// Project fetches a single project.
func (c *Client) Project(ctx context.Context, id uuid.UUID) (Project, error) {
	var project Project
	err := c.doJSON(ctx, http.MethodGet, "/project/"+id.String(), nil, &project)
	return project, err
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/project/"+id.String(), nil, nil)
}

// SetAccessCookie stores the user id in the accessId cookie for the backend
// host, making subsequent requests authenticated.
func (c *Client) SetAccessCookie(userID uuid.UUID) {
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  AccessCookieName,
		Value: userID.String(),
		Path:  "/",
	}})
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to parse request path: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
