// services/assist.go
package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"askbm-backend/models"
)

// AssistClient wraps the generative AI endpoint behind three calls. Every
// error path resolves to a fixed fallback value: the caller never sees a
// hard failure from this dependency.
type AssistClient struct {
	http   *resty.Client
	apiKey string
	model  string
	log    *zap.Logger
}

func NewAssistClient(baseURL, apiKey, model string, log *zap.Logger) *AssistClient {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &AssistClient{http: client, apiKey: apiKey, model: model, log: log}
}

type aiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *aiInlineData `json:"inline_data,omitempty"`
}

type aiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type aiContent struct {
	Parts []aiPart `json:"parts"`
}

type aiGenerationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type aiRequest struct {
	Contents         []aiContent         `json:"contents"`
	GenerationConfig *aiGenerationConfig `json:"generationConfig,omitempty"`
}

type aiResponse struct {
	Candidates []struct {
		Content aiContent `json:"content"`
	} `json:"candidates"`
}

func (c *AssistClient) generate(ctx context.Context, req aiRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai endpoint not configured")
	}
	var out aiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post("/v1beta/models/" + c.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("ai call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ai call: status %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai call: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// MarketingMessage drafts a short post-visit follow-up for a customer.
func (c *AssistClient) MarketingMessage(ctx context.Context, customerName, serviceName string) string {
	prompt := fmt.Sprintf(
		"Write a short, friendly, and professional WhatsApp message for a salon customer named %s who just had a %s. "+
			"Ask them for a review and offer a 10%% discount on their next visit. Keep it under 50 words. include emojis.",
		customerName, serviceName)

	text, err := c.generate(ctx, aiRequest{Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}}})
	if err != nil {
		c.log.Warn("marketing message fallback", zap.Error(err))
		return fmt.Sprintf("Hi %s, thanks for choosing us for your %s! We hope to see you again soon.", customerName, serviceName)
	}
	return strings.TrimSpace(text)
}

// BusinessInsight produces short actionable advice from topline numbers.
func (c *AssistClient) BusinessInsight(ctx context.Context, totalRevenue int64, appointmentCount int) string {
	prompt := fmt.Sprintf(
		"Act as a business analyst for a Salon. Here is the data: Total Revenue: %d, Total Appointments: %d. "+
			"Provide 3 bullet points of short, actionable advice to increase revenue next month. "+
			"Keep it strictly professional and concise.",
		totalRevenue, appointmentCount)

	text, err := c.generate(ctx, aiRequest{Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}}})
	if err != nil {
		c.log.Warn("business insight fallback", zap.Error(err))
		return "Focus on customer retention and upselling high-margin services."
	}
	return strings.TrimSpace(text)
}

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// FallbackFaceAnalysis is returned whenever the vision call cannot produce a
// usable result.
func FallbackFaceAnalysis() models.FaceAnalysis {
	return models.FaceAnalysis{
		FaceShape: "Oval (Estimated)",
		SkinTone:  "Medium",
		AgeGroup:  "25-35",
		Recommendations: []models.Recommendation{
			{Service: "Hydrating Facial", Reason: "General skin maintenance"},
			{Service: "Layered Haircut", Reason: "Adds volume to hair"},
			{Service: "Manicure", Reason: "Standard grooming"},
		},
	}
}

// AnalyzeFace runs the vision analysis on an image supplied either as a raw
// base64 string or a data URL. Any failure yields the fallback analysis.
func (c *AssistClient) AnalyzeFace(ctx context.Context, image string) models.FaceAnalysis {
	mimeType := "image/jpeg"
	data := image
	if m := dataURLPattern.FindStringSubmatch(image); m != nil {
		mimeType = m[1]
		data = m[2]
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		c.log.Warn("face analysis fallback: bad image payload", zap.Error(err))
		return FallbackFaceAnalysis()
	}

	prompt := `Analyze this image of a salon customer.
Identify:
1. Face Shape (e.g., Oval, Round, Square)
2. Skin Tone/Complexion
3. Approximate Age Group
4. Hair Type/Texture (if visible)

Based on these features, recommend 3 specific salon services (haircuts, facials, or treatments) that would suit them best.

Return ONLY a JSON object with this structure:
{
  "faceShape": "string",
  "skinTone": "string",
  "ageGroup": "string",
  "recommendations": [
    { "service": "string", "reason": "string" }
  ]
}`

	req := aiRequest{
		Contents: []aiContent{{Parts: []aiPart{
			{InlineData: &aiInlineData{MimeType: mimeType, Data: data}},
			{Text: prompt},
		}}},
		GenerationConfig: &aiGenerationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		c.log.Warn("face analysis fallback", zap.Error(err))
		return FallbackFaceAnalysis()
	}

	var result models.FaceAnalysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		c.log.Warn("face analysis fallback: undecodable response", zap.Error(err))
		return FallbackFaceAnalysis()
	}
	if result.FaceShape == "" || len(result.Recommendations) == 0 {
		c.log.Warn("face analysis fallback: incomplete response")
		return FallbackFaceAnalysis()
	}
	return result
}
