package llm

import (
	"context"
	"encoding/json"
)

// Provider is a text completion backend with an optional JSON contract.
type Provider interface {
	// Generate sends the request and returns the model output. When the
	// request carries a Schema the Content is validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON document expected back from the model.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Text returns the raw output as a string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Decode unmarshals the JSON payload of the response, tolerating
// markdown fences and surrounding prose.
func (r *Response) Decode(v any) error {
	raw, err := ExtractJSON(string(r.Content))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds the common single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
