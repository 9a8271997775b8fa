package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// defaultTimeout bounds every call made through Collaborator. The spec
// names no duration; this keeps one slow model response from stalling the
// single-threaded world executor (spec §5) indefinitely.
const defaultTimeout = 20 * time.Second

// embedDimensions matches gemini-embedding-001's published output size,
// mirrored from theRebelliousNerd-codenerd's genai.go engine.
const embedDimensions = 3072

// Collaborator is the live, model-backed implementation of every
// forward-reference LLM seam in the engine.
type Collaborator struct {
	client     *genai.Client
	chatModel  string
	embedModel string
	log        *zap.Logger
	timeout    time.Duration
}

// New builds a Collaborator against Google's GenAI API. chatModel/embedModel
// default to gemini-2.0-flash/gemini-embedding-001 when empty, matching
// internal/config's defaults.
func New(ctx context.Context, apiKey, chatModel, embedModel string, log *zap.Logger) (*Collaborator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	if chatModel == "" {
		chatModel = "gemini-2.0-flash"
	}
	if embedModel == "" {
		embedModel = "gemini-embedding-001"
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}

	return &Collaborator{
		client:     client,
		chatModel:  chatModel,
		embedModel: embedModel,
		log:        log,
		timeout:    defaultTimeout,
	}, nil
}

// chatCompletion sends a single-turn prompt and returns the model's text
// reply. Every public method on Collaborator funnels through here so
// timeout/unavailability handling lives in one place.
func (c *Collaborator) chatCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, c.chatModel, contents, nil)
	if err != nil {
		c.log.Warn("llm: chat completion failed", zap.Error(err))
		return "", rpgerr.Newf(rpgerr.CodeExternalUnavailable, "llm: chat completion: %v", err)
	}
	text := resp.Text()
	if text == "" {
		return "", rpgerr.New(rpgerr.CodeExternalUnavailable, "llm: empty chat completion response")
	}
	return text, nil
}

// createEmbedding resolves text to a single embedding vector.
func (c *Collaborator) createEmbedding(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	resp, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents,
		&genai.EmbedContentConfig{OutputDimensionality: int32Ptr(embedDimensions)})
	if err != nil {
		c.log.Warn("llm: embed failed", zap.Error(err))
		return nil, rpgerr.Newf(rpgerr.CodeExternalUnavailable, "llm: create embedding: %v", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, rpgerr.New(rpgerr.CodeExternalUnavailable, "llm: no embeddings returned")
	}
	return resp.Embeddings[0].Values, nil
}

func int32Ptr(i int32) *int32 { return &i }
