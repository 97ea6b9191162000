// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// Call records one request made to a Fake
type Call struct {
	Prompt      string
	Tier        llm.ModelTier
	Temperature float32
	JSON        bool
}

// Fake answers prompts with a function and records every call.
// It is safe for concurrent use.
type Fake struct {
	// Respond returns the completion for a prompt. A nil Respond returns Response.
	Respond  func(prompt string) (string, error)
	Response string

	mu    sync.Mutex
	calls []Call
}

// NewFake returns a Fake that always answers response
func NewFake(response string) *Fake {
	return &Fake{Response: response}
}

// ByMarker answers with the first response whose marker occurs in the prompt.
// Prompts matching no marker get fallback.
func ByMarker(responses map[string]string, fallback func(prompt string) (string, error)) func(string) (string, error) {
	return func(prompt string) (string, error) {
		for marker, response := range responses {
			if strings.Contains(prompt, marker) {
				return response, nil
			}
		}
		return fallback(prompt)
	}
}

func (f *Fake) answer(call Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Respond != nil {
		return f.Respond(call.Prompt)
	}
	return f.Response, nil
}

// GenerateContent implements llm.Client
func (f *Fake) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.answer(Call{Prompt: prompt, Tier: tier, Temperature: llm.DefaultTemperature})
}

// GenerateWithTemperature implements llm.Client
func (f *Fake) GenerateWithTemperature(_ context.Context, prompt string, tier llm.ModelTier, temperature float32) (string, error) {
	return f.answer(Call{Prompt: prompt, Tier: tier, Temperature: temperature})
}

// GenerateJSON implements llm.Client
func (f *Fake) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	text, err := f.answer(Call{Prompt: prompt, Tier: tier, Temperature: llm.DefaultTemperature, JSON: true})
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(text), nil
}

// GetModel implements llm.Client
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close implements llm.Client
func (f *Fake) Close() error {
	return nil
}

// Calls returns a copy of the recorded calls
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
