package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string  `json:"finishReason"`
		AvgLogprobs  float64 `json:"avgLogprobs"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Temperature       float64
	TopP              float64
	TopK              int
	MaxOutputTokens   int
	SystemInstruction string
	EnableSearch      bool
}

// DefaultOptions match the generation settings used across the pipeline.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{Temperature: 0.4, TopP: 0.9, TopK: 40}
}

// Client calls the Gemini REST API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different endpoint, used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// Generate sends a text-only prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	parts := []map[string]any{{"text": prompt}}
	return c.generateContent(ctx, parts, opts)
}

// GenerateWithAudio sends a prompt plus an inline audio part, used for
// transcription calls.
func (c *Client) GenerateWithAudio(ctx context.Context, prompt, mimeType string, audio []byte, opts GenerateOptions) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload is empty")
	}
	parts := []map[string]any{
		{"text": prompt},
		{"inline_data": map[string]any{
			"mime_type": mimeType,
			"data":      base64.StdEncoding.EncodeToString(audio),
		}},
	}
	return c.generateContent(ctx, parts, opts)
}

func (c *Client) generateContent(ctx context.Context, parts []map[string]any, opts GenerateOptions) (string, error) {
	startTime := time.Now()

	generationConfig := map[string]any{"temperature": opts.Temperature}
	if opts.TopP > 0 {
		generationConfig["topP"] = opts.TopP
	}
	if opts.TopK > 0 {
		generationConfig["topK"] = opts.TopK
	}
	if opts.MaxOutputTokens > 0 {
		generationConfig["maxOutputTokens"] = opts.MaxOutputTokens
	}

	payload := map[string]any{
		"contents":         []map[string]any{{"parts": parts}},
		"generationConfig": generationConfig,
	}
	if opts.SystemInstruction != "" {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]any{{"text": opts.SystemInstruction}},
		}
	}
	if opts.EnableSearch {
		payload["tools"] = []map[string]any{{"google_search": map[string]any{}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed marshal API payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("API non-OK status: %s. Body: %s", resp.Status, string(respBodyBytes))
		return "", fmt.Errorf("API request failed: %s", resp.Status)
	}

	var response GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed decode API response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in API response")
	}

	var result strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}

	text := result.String()
	log.Printf("API call successful. Result: %d words. Time: %v",
		len(strings.Fields(text)), time.Since(startTime))
	return text, nil
}
