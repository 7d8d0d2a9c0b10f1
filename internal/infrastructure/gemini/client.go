package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxIcebreakers = 3

// IcebreakerSubject is what the model knows about one side of a match.
type IcebreakerSubject struct {
	Name      string
	Interests []string
	Purpose   string
	Narrative string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateIcebreakers asks the model for opening lines that from could send to.
func (c *GeminiClient) GenerateIcebreakers(ctx context.Context, from, to IcebreakerSubject) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate %d thoughtful icebreaker messages for two people matched on a purpose-driven matrimony platform.
		Person 1: %s. Purpose: %s. Mission: %q. Interests: %v
		Person 2: %s. Purpose: %s. Mission: %q. Interests: %v

		Task: Create %d distinct, respectful opening lines that Person 1 could send to Person 2.
		Focus on their shared purpose first, then shared interests.
		Output: JSON array of strings. Example: ["Hi...", "Hello..."]
	`, maxIcebreakers,
		from.Name, from.Purpose, from.Narrative, from.Interests,
		to.Name, to.Purpose, to.Narrative, to.Interests,
		maxIcebreakers)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return parseIcebreakers(sb.String())
}

func parseIcebreakers(text string) ([]string, error) {
	responseText := strings.TrimSpace(text)
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var icebreakers []string
	if err := json.Unmarshal([]byte(responseText), &icebreakers); err != nil {
		// Fallback if JSON parsing fails - just return raw text split by newlines
		for _, line := range strings.Split(responseText, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				icebreakers = append(icebreakers, line)
			}
		}
		if len(icebreakers) == 0 {
			return nil, fmt.Errorf("failed to parse icebreakers: %w", err)
		}
	}

	if len(icebreakers) > maxIcebreakers {
		icebreakers = icebreakers[:maxIcebreakers]
	}
	return icebreakers, nil
}
