/*
Package stylist wraps the generative service behind the storefront's two AI
features: the stylist chat assistant and the virtual try-on image generation.

Both calls are pass-throughs to the Gemini API. Chat failures degrade to a
fixed fallback sentence and never surface as errors; try-on failures return a
human-readable message for the caller to display.
*/
package stylist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/genai"

	"bushnoor/internal/pkg/logx"
)

const (
	chatModel  = "gemini-3-pro-preview"
	imageModel = "gemini-3-pro-image-preview"

	systemInstruction = "You are the AI stylist assistant for BushNoor. We specialize in high-end " +
		"Party Wear and Wedding Wear. Be polite, sophisticated, and helpful. Do not mention prices " +
		"unless asked. If asked about the Virtual Try-On, explain that they can upload a photo to " +
		"see themselves in our dresses. Keep responses concise."

	tryOnPrompt = "Generate a photorealistic image of the woman in the first image wearing the " +
		"dress shown in the second image. Maintain her exact pose, body shape, and facial features. " +
		"The lighting should be elegant and flattering."

	// FallbackReply is returned whenever the chat call fails or produces no text.
	FallbackReply = "I am currently experiencing high traffic. Please try again later."

	// Greeting opens every stylist conversation.
	Greeting = "Hello! Welcome to BushNoor. How can I assist you with your outfit today?"
)

// Resolution is the try-on output quality tier.
type Resolution string

const (
	Res1K Resolution = "1K"
	Res2K Resolution = "2K"
	Res4K Resolution = "4K"
)

// ValidResolution reports whether the tier is one of 1K, 2K, 4K.
func ValidResolution(r Resolution) bool {
	return r == Res1K || r == Res2K || r == Res4K
}

// Message is one turn of a stylist conversation. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Service is the generation contract consumed by the handlers.
type Service interface {
	// SendMessage answers a chat message given the prior conversation. It never
	// fails; errors are logged and collapsed into FallbackReply.
	SendMessage(ctx context.Context, message string, history []Message) string

	// GenerateTryOn composes the user photo with the garment image and returns
	// the generated PNG bytes.
	GenerateTryOn(ctx context.Context, userImage, garmentImage []byte, res Resolution) ([]byte, error)
}

// Client is the Gemini-backed Service implementation.
type Client struct {
	ai *genai.Client
}

// NewClient creates the Gemini client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	ai, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{ai: ai}, nil
}

func (c *Client) SendMessage(ctx context.Context, message string, history []Message) string {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	result, err := c.ai.Models.GenerateContent(ctx, chatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		logx.Error(err, "Stylist chat call failed")
		return FallbackReply
	}

	if text := result.Text(); text != "" {
		return text
	}
	return FallbackReply
}

func (c *Client) GenerateTryOn(ctx context.Context, userImage, garmentImage []byte, res Resolution) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(tryOnPrompt),
			genai.NewPartFromBytes(userImage, "image/jpeg"),
			genai.NewPartFromBytes(garmentImage, "image/jpeg"),
		}, genai.RoleUser),
	}

	result, err := c.ai.Models.GenerateContent(ctx, imageModel, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			ImageSize:   string(res),
			AspectRatio: "3:4",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("try-on generation: %w", err)
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, errors.New("no image generated")
}

// FetchImage downloads the garment image referenced by a product so it can be
// inlined into the generation request.
func FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	const maxImageBytes = 10 << 20
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}
