// Package api implements the HTTP client for the document vault backend.
// It wraps the /api/v1 endpoints and keeps the access token obtained on
// login for subsequent authenticated calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docvault/docvault/internal/common"
)

// Client talks to the document vault HTTP API. It is not safe for
// concurrent use: Login mutates the stored token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Document mirrors the document representation returned by the server.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	S3Key       string    `json:"s3_key"`
	UploadDate  time.Time `json:"upload_date"`
	IsEncrypted bool      `json:"is_encrypted"`
}

// DocumentList is the payload of GET /api/v1/documents.
type DocumentList struct {
	UserRequesting string     `json:"user_requesting"`
	Documents      []Document `json:"documents"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// IsAuthenticated reports whether a login has stored an access token.
// It does not verify the token is still valid on the server.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// Register creates a new account. A duplicate username or email surfaces
// as common.ErrorAlreadyExists.
func (c *Client) Register(ctx context.Context, username, email, password string) error {

	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, readError(resp.Body))
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readError(resp.Body))
	}

	return nil
}

// Login exchanges credentials for an access token and stores it on the
// client. The token endpoint accepts a form body, matching OAuth2-style
// password flows. Bad credentials surface as common.ErrorUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) error {

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", common.ErrorUnauthorized, readError(resp.Body))
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readError(resp.Body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("error decoding token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return fmt.Errorf("empty access token in response")
	}

	c.token = tokenResp.AccessToken
	return nil
}

// Me returns the username the server resolves from the stored token.
func (c *Client) Me(ctx context.Context) (string, error) {

	resp, err := c.doAuthenticated(ctx, http.MethodGet, "/api/v1/auth/me", "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkAuthenticatedStatus(resp, http.StatusOK); err != nil {
		return "", err
	}

	var meResp struct {
		User string `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meResp); err != nil {
		return "", fmt.Errorf("error decoding response: %w", err)
	}

	return meResp.User, nil
}

// ListDocuments fetches the caller's documents, most recent first.
func (c *Client) ListDocuments(ctx context.Context) (*DocumentList, error) {

	resp, err := c.doAuthenticated(ctx, http.MethodGet, "/documents", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkAuthenticatedStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	list := &DocumentList{}
	if err := json.NewDecoder(resp.Body).Decode(list); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return list, nil
}

// UploadDocument streams the file at path to the server as a multipart
// form and returns the stored document record.
func (c *Client) UploadDocument(ctx context.Context, path string) (*Document, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := c.doAuthenticated(ctx, http.MethodPost, "/documents",
		writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkAuthenticatedStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}

	doc := &Document{}
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return doc, nil
}

func (c *Client) doAuthenticated(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	if c.token == "" {
		return nil, common.ErrorUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.httpClient.Do(req)
}

func checkAuthenticatedStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, readError(resp.Body))
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readError(resp.Body))
}

func readError(r io.Reader) string {
	var e errorResponse
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Error == "" {
		return "no details"
	}
	return e.Error
}
