package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/models"
)

// wire shape of a generateContent request, as far as these tests care
type generateRequest struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestGeminiGenerate_SendsHistoryAndSystemPrompt(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"A veces pasa. "},{"text":"Cuéntame más."}]}}]}`))
	}))
	defer server.Close()

	c := NewGeminiClient("secret", "test-model", server.URL, time.Second)
	history := []models.ChatTurn{
		{Role: "user", Text: "Hola, soy Ana."},
		{Role: "model", Text: "Hola Ana, estoy listo para escucharte."},
	}
	reply, err := c.Generate(context.Background(), "persona", history, "estoy cansada")
	require.NoError(t, err)
	assert.Equal(t, "A veces pasa. Cuéntame más.", reply)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "persona", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "user", got.Contents[2].Role)
	assert.Equal(t, "estoy cansada", got.Contents[2].Parts[0].Text)
}

func TestGeminiGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"blank reply", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewGeminiClient("secret", "m", server.URL, time.Second)
			_, err := c.Generate(context.Background(), "", nil, "hola")
			assert.Error(t, err)
		})
	}
}

func TestGeminiGenerate_MissingKey(t *testing.T) {
	c := NewGeminiClient("", "", "", 0)
	_, err := c.Generate(context.Background(), "", nil, "hola")
	assert.ErrorIs(t, err, ErrGeminiNotEnabled)
	assert.Equal(t, DefaultGeminiModel, c.Model)
}
