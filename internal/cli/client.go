package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed HTTP client for the matchroom API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Register creates a new account and returns its first session
func (c *Client) Register(username, password string) (AuthResult, error) {
	var result AuthResult
	body := credentialsRequest{Username: username, Password: password}
	err := c.do(http.MethodPost, "/api/v1/users/register", body, &result)
	return result, err
}

// Login authenticates an existing account and returns a fresh session
func (c *Client) Login(username, password string) (AuthResult, error) {
	var result AuthResult
	body := credentialsRequest{Username: username, Password: password}
	err := c.do(http.MethodPost, "/api/v1/users/login", body, &result)
	return result, err
}

// Me returns the authenticated user with lifetime stats
func (c *Client) Me() (User, error) {
	var result User
	err := c.do(http.MethodGet, "/api/v1/users/me", nil, &result)
	return result, err
}

// CreateRoom opens a new room. A maxPlayers of 0 leaves the size to the
// server default.
func (c *Client) CreateRoom(maxPlayers int) (Room, error) {
	var result Room
	var body any
	if maxPlayers > 0 {
		body = createRoomRequest{MaxPlayers: maxPlayers}
	}
	err := c.do(http.MethodPost, "/api/v1/rooms", body, &result)
	return result, err
}

// GetRoom reads the room at its current revision
func (c *Client) GetRoom(code string) (Room, error) {
	var result Room
	err := c.do(http.MethodGet, c.roomPath(code, ""), nil, &result)
	return result, err
}

// JoinRoom takes a seat in the room, or reconnects an existing seat
func (c *Client) JoinRoom(code string) (Room, error) {
	var result Room
	err := c.do(http.MethodPost, c.roomPath(code, "join"), nil, &result)
	return result, err
}

// StartRoom begins the match with an optional initial state document
func (c *Client) StartRoom(code string, state json.RawMessage) (Room, error) {
	var result Room
	var body any
	if state != nil {
		body = startRequest{State: state}
	}
	err := c.do(http.MethodPost, c.roomPath(code, "start"), body, &result)
	return result, err
}

// UpdateRoomState replaces the room's state document. A non-empty winnerID
// reports the match winner alongside the state.
func (c *Client) UpdateRoomState(code string, state json.RawMessage, winnerID string) (UpdateAck, error) {
	var result UpdateAck
	body := updateStateRequest{State: state, ReportWinnerID: winnerID}
	err := c.do(http.MethodPost, c.roomPath(code, "state"), body, &result)
	return result, err
}

// History returns all concluded matches, newest first
func (c *Client) History() ([]MatchRecord, error) {
	var result []MatchRecord
	err := c.do(http.MethodGet, "/api/v1/history", nil, &result)
	return result, err
}

// Leaderboard returns all users ranked by wins
func (c *Client) Leaderboard() ([]LeaderboardEntry, error) {
	var result []LeaderboardEntry
	err := c.do(http.MethodGet, "/api/v1/leaderboard", nil, &result)
	return result, err
}

// Health checks that the server is reachable
func (c *Client) Health() (HealthResult, error) {
	var result HealthResult
	err := c.do(http.MethodGet, "/api/v1/health", nil, &result)
	return result, err
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createRoomRequest struct {
	MaxPlayers int `json:"maxPlayers"`
}

type startRequest struct {
	State json.RawMessage `json:"state"`
}

type updateStateRequest struct {
	State          json.RawMessage `json:"state"`
	ReportWinnerID string          `json:"reportWinnerId,omitempty"`
}

func (c *Client) roomPath(code, action string) string {
	p := "/api/v1/rooms/" + url.PathEscape(code)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
