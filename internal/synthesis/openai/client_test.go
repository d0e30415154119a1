package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgen/internal/config"
	"medgen/internal/port"
	"medgen/internal/synthesis/openai"
)

func testConfig() *config.SynthesizerConfig {
	return &config.SynthesizerConfig{
		APIKey:       "test-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  5,
	}
}

func completionResponse(content, finishReason string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]any{"content": content},
				"finish_reason": finishReason,
			},
		},
	})
	return string(body)
}

func TestComplete_RequestShape(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(completionResponse("result text", "stop")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	out, err := client.Complete(context.Background(), port.SynthesisRequest{
		System:      "system prompt",
		Prompt:      "user prompt",
		Temperature: 0.2,
		MaxTokens:   4000,
	})

	require.NoError(t, err)
	assert.Equal(t, "result text", out)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.InDelta(t, 0.2, captured["temperature"], 0.0001)
	assert.Equal(t, float64(4000), captured["max_tokens"])
	_, hasFormat := captured["response_format"]
	assert.False(t, hasFormat)

	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "system prompt", system["content"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	content := user["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)
	assert.Equal(t, "text", text["type"])
	assert.Equal(t, "user prompt", text["text"])
}

func TestComplete_JSONMode(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(completionResponse(`{"ok":true}`, "stop")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	out, err := client.Complete(context.Background(), port.SynthesisRequest{
		Prompt:    "structure this",
		ForceJSON: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	format := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
}

func TestComplete_InlineImages(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(completionResponse("ok", "stop")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := client.Complete(context.Background(), port.SynthesisRequest{
		Prompt: "read these",
		Images: []port.InlineImage{
			{MIME: "image/png", Data: []byte{1, 2, 3}},
			{MIME: "image/jpeg", Data: []byte{4, 5}},
		},
	})
	require.NoError(t, err)

	messages := captured["messages"].([]any)
	user := messages[len(messages)-1].(map[string]any)
	content := user["content"].([]any)
	require.Len(t, content, 3)

	img := content[1].(map[string]any)
	assert.Equal(t, "image_url", img["type"])
	url := img["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	img = content[2].(map[string]any)
	url = img["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestComplete_NoSystemMessage(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(completionResponse("ok", "stop")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := client.Complete(context.Background(), port.SynthesisRequest{Prompt: "p"})
	require.NoError(t, err)

	messages := captured["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := client.Complete(context.Background(), port.SynthesisRequest{Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limit")
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := client.Complete(context.Background(), port.SynthesisRequest{Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestComplete_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionResponse("partial...", "length")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(testConfig(), srv.URL)
	_, err := client.Complete(context.Background(), port.SynthesisRequest{Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}
