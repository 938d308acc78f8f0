package category

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mcoot/wordhunt/internal/model"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

const generatePrompt = `Create a word-search category for the theme %q.

Reply with JSON in exactly this shape:
{"id": "<lowercase-slug>", "name": "<short display name>", "words": ["WORD", ...]}

Rules:
- Exactly %d distinct words.
- Each word is a single English word of 4 to %d letters, A-Z only, no spaces, digits or punctuation.
- Reply ONLY with the JSON, no commentary or markdown.`

// GeminiGenerator creates categories with Gemini on Vertex AI
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator using Application Default Credentials
func NewGeminiGenerator(ctx context.Context, projectID, region string) (*GeminiGenerator, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:    client,
		modelName: defaultModel,
	}, nil
}

// Generate asks Gemini for count words on the theme, each at most maxLen letters
func (g *GeminiGenerator) Generate(ctx context.Context, theme string, count, maxLen int) (*model.Category, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, fmt.Errorf("%w: theme is required", model.ErrInvalidCategory)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(generatePrompt, theme, count, maxLen)},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	return parseGenerated(text, theme)
}

// parseGenerated decodes a generator reply, deriving an ID from the theme if none was given
func parseGenerated(text, theme string) (*model.Category, error) {
	var c model.Category
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return nil, fmt.Errorf("parse category JSON: %w\nraw response: %s", err, text)
	}
	if c.ID == "" {
		c.ID = model.CategoryID(slug(theme))
	} else {
		c.ID = model.CategoryID(slug(string(c.ID)))
	}
	if c.Name == "" {
		c.Name = theme
	}
	return &c, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var _ Generator = (*GeminiGenerator)(nil)
