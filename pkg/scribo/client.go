package scribo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-courselab-be/pkg/store"
)

// GenerationError wraps any failure talking to the generative service:
// network, non-2xx status, or a reply we cannot parse.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("scribo %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// OutlineGenerator is the boundary to the external generative service.
type OutlineGenerator interface {
	GenerateOutline(ctx context.Context, topic, duration string) (*GeneratedOutline, error)
	UpdateOutline(ctx context.Context, script *store.DraftState, notes string) (*store.ChangeSet, error)
	GeneratePage(ctx context.Context, req PageRequest) (string, error)
}

// GeneratedOutline is the full outline proposal returned by generate-outline.
type GeneratedOutline struct {
	Title      string            `json:"title"`
	Objectives []string          `json:"objectives"`
	Duration   string            `json:"duration"`
	Summary    string            `json:"summary"`
	Modules    []GeneratedModule `json:"modules"`
}

type GeneratedModule struct {
	Name      string   `json:"name"`
	Duration  string   `json:"duration"`
	Subtopics []string `json:"subtopics"`
	Features  []string `json:"features"`
}

// PageRequest describes the module a lesson page is generated for.
type PageRequest struct {
	CourseTitle string   `json:"course_title"`
	ModuleName  string   `json:"module_name"`
	Duration    string   `json:"duration"`
	Subtopics   []string `json:"subtopics"`
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

var _ OutlineGenerator = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Wire envelope (internal to this package) ---
// The service wraps every reply in a validation pipeline envelope; the
// useful part is a JSON-encoded string under valid_replies.

type scriboEnvelope struct {
	Response struct {
		OutputValidator struct {
			ValidReplies string `json:"valid_replies"`
		} `json:"output_validator"`
	} `json:"response"`
}

type updateOutlineRequest struct {
	Script *store.DraftState `json:"script"`
	Notes  string            `json:"notes"`
}

type generateOutlineRequest struct {
	Topic string `json:"topic"`
	Time  string `json:"time"`
}

func (c *Client) GenerateOutline(ctx context.Context, topic, duration string) (*GeneratedOutline, error) {
	replies, err := c.post(ctx, "/generate-outline", generateOutlineRequest{Topic: topic, Time: duration})
	if err != nil {
		return nil, &GenerationError{Op: "generate-outline", Err: err}
	}

	var outline GeneratedOutline
	if err := json.Unmarshal([]byte(replies), &outline); err != nil {
		return nil, &GenerationError{Op: "generate-outline", Err: fmt.Errorf("malformed outline reply: %w", err)}
	}
	return &outline, nil
}

func (c *Client) UpdateOutline(ctx context.Context, script *store.DraftState, notes string) (*store.ChangeSet, error) {
	replies, err := c.post(ctx, "/update-outline", updateOutlineRequest{Script: script, Notes: notes})
	if err != nil {
		return nil, &GenerationError{Op: "update-outline", Err: err}
	}

	var changes store.ChangeSet
	if err := json.Unmarshal([]byte(replies), &changes); err != nil {
		return nil, &GenerationError{Op: "update-outline", Err: fmt.Errorf("malformed changeset reply: %w", err)}
	}
	return &changes, nil
}

func (c *Client) GeneratePage(ctx context.Context, req PageRequest) (string, error) {
	replies, err := c.post(ctx, "/generate-page", req)
	if err != nil {
		return "", &GenerationError{Op: "generate-page", Err: err}
	}
	// Page replies carry the lesson text directly, no nested JSON.
	return replies, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	var envelope scriboEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("malformed envelope: %w", err)
	}
	if envelope.Response.OutputValidator.ValidReplies == "" {
		return "", fmt.Errorf("envelope missing valid_replies")
	}
	return envelope.Response.OutputValidator.ValidReplies, nil
}
