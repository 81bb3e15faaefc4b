// Package integration holds end-to-end API tests. They run against a live
// server and are skipped unless BOOKSHELF_API_URL is set, e.g.
//
//	BOOKSHELF_API_URL=http://localhost:8080 go test ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const timeout = 10 * time.Second

// apiURL returns the base URL or skips the test when none is configured.
func apiURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BOOKSHELF_API_URL")
	if url == "" {
		t.Skip("BOOKSHELF_API_URL not set; skipping integration test")
	}
	return url + "/api/v1"
}

// Response mirrors the server's envelope.
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData is the register endpoint payload.
type RegisterData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginData is the login endpoint payload.
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData is the book DTO as returned by the API.
type BookData struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CreatedBy   uint   `json:"created_by"`
	IsActive    bool   `json:"is_active"`
}

func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		require.NoError(t, err, "failed to marshal request body")
		body = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "failed to build request")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "request failed")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "bad response body: %s", string(raw))
	return &result
}

// PostJSON posts a JSON body and parses the envelope.
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON puts a JSON body and parses the envelope.
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// GetJSON gets and parses the envelope.
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON deletes and parses the envelope.
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// RegisterTestUser registers a fresh user and returns its id and access
// token. The random suffix keeps reruns against the same database green.
func RegisterTestUser(t *testing.T, prefix string) (uint, string) {
	t.Helper()
	base := apiURL(t)

	suffix := fmt.Sprintf("%d%04d", time.Now().UnixNano()%1e9, rand.Intn(10000))
	email := fmt.Sprintf("%s_%s@example.com", prefix, suffix)

	regResp := PostJSON(t, base+"/users/register", map[string]interface{}{
		"username": prefix + suffix[:6],
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, 0, regResp.Code, "register failed: %s", regResp.Message)

	var reg RegisterData
	require.NoError(t, json.Unmarshal(regResp.Data, &reg))

	loginResp := PostJSON(t, base+"/users/login", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, 0, loginResp.Code, "login failed: %s", loginResp.Message)

	var login LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &login))

	return reg.ID, login.AccessToken
}

// CreateTestBook creates a book and returns its id.
func CreateTestBook(t *testing.T, token, title string) uint {
	t.Helper()
	base := apiURL(t)

	resp := PostJSON(t, base+"/books", map[string]interface{}{
		"title":       title,
		"author":      "Integration Author",
		"description": "created by the integration suite",
	}, token)
	require.Equal(t, 0, resp.Code, "create book failed: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}
