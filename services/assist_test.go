package services_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"askbm-backend/services"
)

// With no API key configured every assist call must resolve to its fixed
// fallback rather than an error.

func TestAssist_MarketingMessageFallback(t *testing.T) {
	client := services.NewAssistClient("https://ai.invalid", "", "test-model", nil)

	msg := client.MarketingMessage(context.Background(), "Alice", "Haircut")
	assert.Equal(t, "Hi Alice, thanks for choosing us for your Haircut! We hope to see you again soon.", msg)
}

func TestAssist_BusinessInsightFallback(t *testing.T) {
	client := services.NewAssistClient("https://ai.invalid", "", "test-model", nil)

	insight := client.BusinessInsight(context.Background(), 50000, 120)
	assert.Equal(t, "Focus on customer retention and upselling high-margin services.", insight)
}

func TestAssist_AnalyzeFaceFallback(t *testing.T) {
	client := services.NewAssistClient("https://ai.invalid", "", "test-model", nil)
	image := base64.StdEncoding.EncodeToString([]byte("not really a jpeg"))

	result := client.AnalyzeFace(context.Background(), image)
	assert.Equal(t, services.FallbackFaceAnalysis(), result)
	assert.Equal(t, "Oval (Estimated)", result.FaceShape)
	assert.Len(t, result.Recommendations, 3)
}

func TestAssist_AnalyzeFaceRejectsBadPayload(t *testing.T) {
	client := services.NewAssistClient("https://ai.invalid", "some-key", "test-model", nil)

	// Not base64 at all: falls back without ever calling the endpoint.
	result := client.AnalyzeFace(context.Background(), "!!!not-base64!!!")
	assert.Equal(t, services.FallbackFaceAnalysis(), result)
}

func TestAssist_AnalyzeFaceAcceptsDataURL(t *testing.T) {
	client := services.NewAssistClient("https://ai.invalid", "", "test-model", nil)
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))

	result := client.AnalyzeFace(context.Background(), payload)
	assert.Equal(t, services.FallbackFaceAnalysis(), result)
}
