package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"mindzy/internal/models"
)

const (
	DefaultGeminiModel      = "gemini-1.5-flash"
	DefaultGeminiAPIVersion = "v1beta"
)

var (
	ErrNoCandidates     = errors.New("gemini returned no candidates")
	ErrGeminiNotEnabled = errors.New("gemini api key is not configured")
)

// GeminiClient wraps the genai SDK. The API is stateless, so every call
// carries the whole conversation.
type GeminiClient struct {
	Model string

	client *genai.Client
	err    error
}

// NewGeminiClient builds the SDK client. An empty baseURL keeps the SDK's
// default endpoint. Construction errors surface on every Generate call.
func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &GeminiClient{Model: model}
	if apiKey == "" {
		c.err = ErrGeminiNotEnabled
		return c
	}
	c.client, c.err = genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: DefaultGeminiAPIVersion,
		},
	})
	if c.err != nil {
		log.Printf("[gemini][init][err] %v", c.err)
	}
	return c
}

// Generate sends history plus the new user text and returns the model reply.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt string, history []models.ChatTurn, text string) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(role)))
	}
	contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))

	var cfg *genai.GenerateContentConfig
	if systemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.Model, contents, cfg)
	if err != nil {
		log.Printf("[gemini][generate][err] model=%s: %v", c.Model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	log.Printf("[gemini][generate] model=%s turns=%d took=%s",
		c.Model, len(contents), time.Since(start).Truncate(time.Millisecond))

	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", ErrNoCandidates
	}
	return reply, nil
}
