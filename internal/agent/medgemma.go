package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Config carries the connection settings for the fine-tuned MedGemma
// model served behind an OpenAI-compatible endpoint (e.g. vLLM).
type Config struct {
	APIKey        string
	BaseURL       string
	GuidanceModel string
	VisionModel   string
}

const (
	defaultGuidanceModel = "medgemma-4b-it-ft"
	defaultVisionModel   = "medgemma-4b-it"
)

// MedGemmaClient generates clinical guidance and tongue analyses. The
// underlying API client is created lazily on first use and reused for
// the lifetime of the process; after initialization it is read-only and
// safe to share across concurrent requests.
type MedGemmaClient struct {
	cfg Config

	once   sync.Once
	client *openai.Client
}

func NewMedGemmaClient(cfg Config) *MedGemmaClient {
	if cfg.GuidanceModel == "" {
		cfg.GuidanceModel = defaultGuidanceModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	return &MedGemmaClient{cfg: cfg}
}

func (c *MedGemmaClient) api() *openai.Client {
	c.once.Do(func() {
		conf := openai.DefaultConfig(c.cfg.APIKey)
		if c.cfg.BaseURL != "" {
			conf.BaseURL = c.cfg.BaseURL
		}
		c.client = openai.NewClientWithConfig(conf)
	})
	return c.client
}

// GenerateGuidance wraps the instruction in the Gemma turn template and
// runs a deterministic completion (temperature 0, no sampling). Errors
// propagate to the caller; there is no retry.
func (c *MedGemmaClient) GenerateGuidance(ctx context.Context, instruction string) (string, error) {
	prompt := "<start_of_turn>user\n" + instruction + "<end_of_turn>\n<start_of_turn>model\n"

	resp, err := c.api().CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.cfg.GuidanceModel,
		Prompt:      prompt,
		MaxTokens:   512,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("guidance generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("guidance generation returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}

// darshanPrompt drives the visual tongue examination. In Ayurveda,
// Darshan of the tongue reveals dosha imbalances: white/thick coating
// suggests Kapha, yellow/red Pitta, dry/cracked Vata.
const darshanPrompt = `You are an Ayurvedic physician performing Darshan (visual examination).
Analyze this tongue image and provide a structured report:

COATING: Describe color, thickness, distribution
TEXTURE: Dry/moist/cracked/smooth
COLOR: Tongue body color (pale/red/purple/pink)
DOSHA INDICATORS:
  - Vata: dry, cracked, dark coating, trembling
  - Pitta: red tip, yellow coating, pointed, inflamed
  - Kapha: white thick coating, swollen, wet, scalloped edges
PRIMARY DOSHA IMBALANCE: State which dosha is most imbalanced
AYURVEDIC RECOMMENDATIONS: 2-3 specific dietary/lifestyle suggestions

Keep the analysis concise and clinically structured.`

// AnalyzeTongue sends the base64-encoded tongue image to the vision
// model and returns the free-text examination report.
func (c *MedGemmaClient) AnalyzeTongue(ctx context.Context, imageBase64 string) (string, error) {
	resp, err := c.api().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.VisionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + imageBase64,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: darshanPrompt,
					},
				},
			},
		},
		MaxTokens:   400,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("tongue analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tongue analysis returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
