package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"skirmish/agent"
	"skirmish/communication"
)

// RemoteAgent asks an agent server for every decision.
type RemoteAgent struct {
	url    string
	client *http.Client
}

func NewRemoteAgent(url string) *RemoteAgent {
	return &RemoteAgent{url: url, client: &http.Client{}}
}

func (r *RemoteAgent) FindMove(snapshot communication.Snapshot) (agent.Decision, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	resp, err := r.client.Post(r.url+"/decide", "application/json", bytes.NewReader(body))
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return agent.Decision{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var decision agent.Decision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return agent.Decision{}, fmt.Errorf("failed to decode decision: %w", err)
	}
	if decision.Commands == nil {
		decision.Commands = map[int]communication.Command{}
	}
	return decision, nil
}
