// Package gemini implements the generation.Generator interface using
// Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"google.golang.org/genai"

	"github.com/simverse/simverse-api/internal/config"
	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/generation"
)

// Generator calls the Gemini API for raw lesson text. Failed calls are not
// retried: the content pipeline treats any failure as "no external text"
// and serves fallback content instead.
type Generator struct {
	logger         *slog.Logger
	client         *genai.Client
	model          string
	promptTemplate *template.Template
}

// Ensure Generator implements generation.Generator.
var _ generation.Generator = (*Generator)(nil)

// promptData is the input to the prompt template.
type promptData struct {
	Title       string
	Description string
	Level       string
}

// New creates a Gemini-backed generator from LLM configuration.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("lesson").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger,
		client:         client,
		model:          cfg.ModelName,
		promptTemplate: promptTemplate,
	}, nil
}

// GenerateLessonText implements generation.Generator.
func (g *Generator) GenerateLessonText(ctx context.Context, topic domain.Topic, level domain.Level) (string, error) {
	prompt, err := g.buildPrompt(topic, level)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"topic_id", topic.ID,
		"level", string(level),
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return "", generation.ErrEmptyResponse
	}

	g.logger.DebugContext(ctx, "Gemini API call succeeded",
		"topic_id", topic.ID,
		"response_length", len(text))

	return text, nil
}

// buildPrompt renders the lesson prompt for the topic and level.
func (g *Generator) buildPrompt(topic domain.Topic, level domain.Level) (string, error) {
	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{
		Title:       topic.Title,
		Description: topic.Description,
		Level:       string(level),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
