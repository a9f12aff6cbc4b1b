package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the Gemini API for optional post-match enrichment. The rest of
// the application treats a nil Client as "feature disabled".
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateIntroSuggestions produces up to three opening messages one newly
// matched professional could send the other, based on their shared skills and
// interests.
func (c *Client) GenerateIntroSuggestions(ctx context.Context, mySkills, theirSkills, sharedInterests []string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Two professionals just matched on a networking platform.
		Person A skills: %v
		Person B skills: %v
		Shared interests: %v

		Task: Write 3 short, professional opening messages Person A could send
		to Person B. Reference shared skills or interests where possible.
		Output: JSON array of strings. Example: ["Hi...", "Hello..."]
	`, mySkills, theirSkills, sharedInterests)

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

	responseText := strings.TrimSpace(sb.String())
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var suggestions []string
	if err := json.Unmarshal([]byte(responseText), &suggestions); err != nil {
		// Fall back to line splitting when the model ignores the JSON format.
		for _, line := range strings.Split(responseText, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				suggestions = append(suggestions, line)
			}
		}
		if len(suggestions) == 0 {
			return nil, fmt.Errorf("failed to parse intro suggestions: %w", err)
		}
	}

	return suggestions, nil
}
