package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrScriptNotFound is returned when the script store has no script by that name.
var ErrScriptNotFound = errors.New("script not found")

// ScriptClient fetches opponent and board scripts from a script store
// speaking the Convex HTTP query API.
type ScriptClient struct {
	baseURL    string
	httpClient *http.Client
}

// StoredScript is a script as kept by the store
type StoredScript struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   *int64  `json:"updatedAt,omitempty"`
}

type queryRequest struct {
	Path   string         `json:"path"`
	Args   map[string]any `json:"args"`
	Format string         `json:"format"`
}

type queryResponse struct {
	Status string          `json:"status"`
	Value  json.RawMessage `json:"value"`
	Error  *string         `json:"errorMessage,omitempty"`
}

// NewScriptClient creates a new script store client
func NewScriptClient(deploymentURL string) *ScriptClient {
	return &ScriptClient{
		baseURL: deploymentURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Query executes a query function on the store
func (c *ScriptClient) Query(ctx context.Context, functionPath string, args map[string]any) (json.RawMessage, error) {
	jsonData, err := json.Marshal(queryRequest{Path: functionPath, Args: args, Format: "json"})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/query", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("script store error (status %d): %s", resp.StatusCode, string(body))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if qr.Status != "success" {
		msg := "unknown error"
		if qr.Error != nil {
			msg = *qr.Error
		}
		return nil, fmt.Errorf("query %s failed: %s", functionPath, msg)
	}

	return qr.Value, nil
}

// ListScripts fetches all stored scripts
func (c *ScriptClient) ListScripts(ctx context.Context) ([]StoredScript, error) {
	result, err := c.Query(ctx, "scripts:list", map[string]any{})
	if err != nil {
		return nil, err
	}

	var scripts []StoredScript
	if err := json.Unmarshal(result, &scripts); err != nil {
		return nil, fmt.Errorf("failed to parse scripts: %w", err)
	}
	return scripts, nil
}

// FetchScript returns the code of a stored script
func (c *ScriptClient) FetchScript(ctx context.Context, name string) (string, error) {
	result, err := c.Query(ctx, "scripts:getByName", map[string]any{"name": name})
	if err != nil {
		return "", err
	}

	if string(result) == "null" {
		return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}

	var script StoredScript
	if err := json.Unmarshal(result, &script); err != nil {
		return "", fmt.Errorf("failed to parse script: %w", err)
	}
	return script.Code, nil
}

// FetchPaddleScript fetches a paddle script and validates it before any
// match starts, so a broken store entry fails with its name attached.
func (c *ScriptClient) FetchPaddleScript(ctx context.Context, name string) (string, error) {
	code, err := c.FetchScript(ctx, name)
	if err != nil {
		return "", err
	}
	if err := NewScriptRunner().ValidateScript(code); err != nil {
		return "", fmt.Errorf("store script %q: %w", name, err)
	}
	return code, nil
}
