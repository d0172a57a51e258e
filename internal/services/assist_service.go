package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"invisifeed/pkg/config"
)

// AssistClient provides the AI surface the feedback flow needs: drafting
// help for customers and embeddings for similarity search.
type AssistClient interface {
	ImproveDraft(ctx context.Context, draft, tone string) (string, error)
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

const assistSystemPrompt = `You polish customer feedback for a service business.
Rewrite the draft so it is clear, specific and respectful. Keep the meaning,
keep it short, do not invent details. Reply with the rewritten text only.`

// openAIAssist is the primary client; when the OpenAI call fails it falls
// back to Gemini so a provider outage does not take drafting help down.
type openAIAssist struct {
	client      *openai.Client
	gemini      *genai.Client
	geminiModel string
}

func NewAssistClient(cfg *config.Config) (AssistClient, error) {
	if cfg.AI.OpenAIKey == "" && cfg.AI.GeminiKey == "" {
		return nil, errors.New("no AI provider configured")
	}

	a := &openAIAssist{
		geminiModel: cfg.AI.GeminiModel,
	}
	if cfg.AI.OpenAIKey != "" {
		a.client = openai.NewClient(cfg.AI.OpenAIKey)
	}
	if cfg.AI.GeminiKey != "" {
		gc, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.AI.GeminiKey))
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		a.gemini = gc
	}
	return a, nil
}

func (a *openAIAssist) ImproveDraft(ctx context.Context, draft, tone string) (string, error) {
	prompt := draft
	if tone != "" {
		prompt = fmt.Sprintf("Tone: %s\n\n%s", tone, draft)
	}

	if a.client != nil {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: assistSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: 400,
		})
		if err == nil && len(resp.Choices) > 0 {
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}
		if err != nil {
			log.Printf("openai assist failed, trying gemini: %v", err)
		}
	}

	if a.gemini != nil {
		model := a.gemini.GenerativeModel(a.geminiModel)
		resp, err := model.GenerateContent(ctx, genai.Text(assistSystemPrompt+"\n\n"+prompt))
		if err != nil {
			return "", fmt.Errorf("gemini assist: %w", err)
		}
		var sb strings.Builder
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					sb.WriteString(string(txt))
				}
			}
		}
		out := strings.TrimSpace(sb.String())
		if out == "" {
			return "", errors.New("gemini assist: empty response")
		}
		return out, nil
	}

	return "", errors.New("no AI provider available")
}

func (a *openAIAssist) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if a.client == nil {
		return pgvector.Vector{}, errors.New("embeddings require an OpenAI key")
	}

	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, errors.New("embedding response empty")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
