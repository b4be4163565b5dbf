package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/config"
	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"google.golang.org/genai"
)

const videoPollInterval = 5 * time.Second

// dreamPlanSchema constrains the plan response to strict JSON.
var dreamPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":         {Type: genai.TypeString},
		"summary":       {Type: genai.TypeString},
		"estimatedCost": {Type: genai.TypeNumber},
		"timeline":      {Type: genai.TypeString},
		"steps": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"title", "summary", "estimatedCost", "timeline", "steps"},
}

// Gemini implements Generator against the Google GenAI API.
type Gemini struct {
	client *genai.Client
	cfg    config.GeminiConfig

	pollInterval time.Duration
}

// NewGemini creates a Gemini generator from config.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, cfg: cfg, pollInterval: videoPollInterval}, nil
}

// FinancialTip generates one short saving tip from a spending summary.
func (g *Gemini) FinancialTip(ctx context.Context, summary SpendingSummary) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, genai.Text(tipPrompt(summary)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate tip: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// DreamPlan turns a free-text dream into a structured plan using
// schema-constrained JSON output.
func (g *Gemini) DreamPlan(ctx context.Context, dream string) (*DreamPlan, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   dreamPlanSchema,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, genai.Text(dreamPlanPrompt(dream)), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	var plan DreamPlan
	if err := json.Unmarshal([]byte(cleanModelJSON(resp.Text())), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan response: %w", err)
	}
	return &plan, nil
}

// DreamImage generates one 16:9 image visualizing the dream and returns the
// raw bytes.
func (g *Gemini) DreamImage(ctx context.Context, dream string) ([]byte, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, dreamImagePrompt(dream),
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    "16:9",
			OutputMIMEType: "image/png",
		})
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image in response")
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// chatRole maps a wire role to the genai role. Anything unrecognized is
// treated as the user speaking.
func chatRole(role string) genai.Role {
	if role == "model" {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Chat answers one conversational turn, confined to the provided snapshot.
func (g *Gemini) Chat(ctx context.Context, history []ChatMessage, snapshot domain.Snapshot) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Text, chatRole(m.Role)))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatSystemPrompt(snapshot), genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// VideoStory starts a video generation operation and polls it to completion.
func (g *Gemini) VideoStory(ctx context.Context, prompt string) (*VideoResult, error) {
	op, err := g.client.Models.GenerateVideos(ctx, g.cfg.VideoModel, videoStoryPrompt(prompt), nil,
		&genai.GenerateVideosConfig{AspectRatio: "16:9"})
	if err != nil {
		return nil, fmt.Errorf("failed to start video generation: %w", err)
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.pollInterval):
		}
		op, err = g.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to poll video operation: %w", err)
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, fmt.Errorf("no video in response")
	}
	video := op.Response.GeneratedVideos[0].Video
	return &VideoResult{
		URI:      video.URI,
		Data:     video.VideoBytes,
		MIMEType: video.MIMEType,
	}, nil
}

// cleanModelJSON strips markdown fences models sometimes wrap JSON in.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
