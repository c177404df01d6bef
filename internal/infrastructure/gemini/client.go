package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	maxSuggestions = 3
	minBioLen      = 20
	maxBioLen      = 200
)

// Founder is the slice of a profile the assistant gets to see.
type Founder struct {
	Name   string
	Title  string
	Bio    string
	Vision string
	Tags   []string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateConnectionIntro writes a short note telling two newly connected
// founders why they complement each other.
func (c *GeminiClient) GenerateConnectionIntro(ctx context.Context, a, b Founder) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(introPrompt(a, b)))
	if err != nil {
		return "", fmt.Errorf("failed to generate intro: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("no content generated")
	}
	return text, nil
}

// SuggestBios returns up to three bio drafts for the onboarding form.
func (c *GeminiClient) SuggestBios(ctx context.Context, name, title string, abilities []string) ([]string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(bioPrompt(name, title, abilities)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate bios: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("no content generated")
	}
	return parseSuggestions(text)
}

func introPrompt(a, b Founder) string {
	return fmt.Sprintf(`
		Two startup founders just matched as potential co-founders.
		Founder 1: %s
		Founder 2: %s

		Task: Write a short introduction (2-3 sentences) addressed to both of them
		explaining how their skills and directions complement each other.
		Output: Just the introduction text.
	`, describe(a), describe(b))
}

func bioPrompt(name, title string, abilities []string) string {
	return fmt.Sprintf(`
		Write 3 short first-person bios for a founder looking for a co-founder.
		Name: %s
		Title: %s
		Abilities: %s

		Each bio must be between 20 and 200 characters.
		Output: JSON array of strings. Example: ["I ...", "I ..."]
	`, name, title, strings.Join(abilities, ", "))
}

func describe(f Founder) string {
	return fmt.Sprintf("%s, %s. Bio: %s. Vision: %s. Tags: %s",
		f.Name, f.Title, f.Bio, f.Vision, strings.Join(f.Tags, ", "))
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

// parseSuggestions accepts a JSON array, optionally fenced as markdown, and
// falls back to one suggestion per non-empty line.
func parseSuggestions(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestions []string
	err := json.Unmarshal([]byte(text), &suggestions)
	if err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.Trim(strings.TrimSpace(line), `-*",`)
			line = strings.TrimSpace(line)
			if line != "" && line != "[" && line != "]" {
				suggestions = append(suggestions, line)
			}
		}
		if len(suggestions) == 0 {
			return nil, fmt.Errorf("failed to parse suggestions: %w", err)
		}
	}

	// Keep only drafts the onboarding bio field would accept.
	usable := make([]string, 0, maxSuggestions)
	for _, bio := range suggestions {
		bio = strings.TrimSpace(bio)
		if n := utf8.RuneCountInString(bio); n < minBioLen || n > maxBioLen {
			continue
		}
		usable = append(usable, bio)
		if len(usable) == maxSuggestions {
			break
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("no suggestion between %d and %d characters", minBioLen, maxBioLen)
	}
	return usable, nil
}
