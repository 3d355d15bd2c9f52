package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/buildly/construction-api/internal/services"
)

func chatRouter(aiService *services.AIService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/chat", NewChatHandler(aiService).Chat)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler_MessageRequired(t *testing.T) {
	r := chatRouter(services.NewAIService(""))

	w := postChat(t, r, gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_NotConfigured(t *testing.T) {
	r := chatRouter(services.NewAIService(""))

	w := postChat(t, r, gin.H{"message": "hello"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChatHandler_RelaysReply(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: "Use asphalt shingles.",
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer upstream.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = upstream.URL
	r := chatRouter(services.NewAIServiceWithConfig(cfg))

	w := postChat(t, r, gin.H{"message": "What shingles should I use?"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Reply     string `json:"reply"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Use asphalt shingles.", body.Reply)
	require.NotEmpty(t, body.Timestamp)
}

func TestChatHandler_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	}))
	defer upstream.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = upstream.URL
	r := chatRouter(services.NewAIServiceWithConfig(cfg))

	w := postChat(t, r, gin.H{"message": "hello"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
