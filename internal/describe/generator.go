// Package describe drafts listing descriptions with the Gemini API. The
// generator never surfaces an error to callers: missing configuration or a
// failed call both degrade to a fixed human-readable fallback string, so the
// caller always receives usable text.
package describe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/example/ecofinds/internal/domain/listing"
)

const (
	defaultModel = "gemini-2.5-flash"

	unavailableMessage = "AI description generation is unavailable. Please set up your API key."
	failedMessage      = "Failed to generate AI description. Please try again or write one manually."
)

// Generator wraps a Gemini client. A zero-value or key-less generator is
// valid and always answers with the unavailable fallback.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator builds a generator. An empty apiKey yields a disabled
// generator rather than an error.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		log.Println("[Describe] No API key configured, description generation disabled")
		return &Generator{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

// Description drafts a marketplace description for the given title and
// category. It always returns a usable string.
func (g *Generator) Description(ctx context.Context, title string, category listing.Category) string {
	if g.client == nil {
		return unavailableMessage
	}

	prompt := fmt.Sprintf(`Generate a compelling and concise marketplace description for a second-hand item. Be enthusiastic and highlight its value. Keep it under 50 words.

Item Title: %q
Category: %q

Description:`, title, category)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("[Describe] Generation failed: %v", err)
		return failedMessage
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return failedMessage
	}
	return text
}
