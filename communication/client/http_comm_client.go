package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skirmish/communication"
)

// Client talks to an environment exposed by server.EnvironmentServer.
type Client struct {
	serverURL string
	http      *http.Client
}

// NewClient initializes and returns a new Client.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Snapshot(ctx context.Context) (communication.Snapshot, error) {
	var snapshot communication.Snapshot
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/snapshot", nil)
	if err != nil {
		return snapshot, fmt.Errorf("failed to build snapshot request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return snapshot, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return snapshot, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}

func (c *Client) Submit(ctx context.Context, commands map[int]communication.Command) error {
	list := make([]communication.Command, 0, len(commands))
	for _, command := range commands {
		list = append(list, command)
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode commands: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/commands", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build commands request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit commands: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	out, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("environment returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
}
