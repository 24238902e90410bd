package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/domain"
)

type stubChatService struct {
	result domain.ChatResult
	turns  []domain.ChatTurn
	err    error

	gotAuthorization string
	gotSessionID     string
	gotMessage       string
}

func (s *stubChatService) Chat(_ context.Context, authorization, sessionID, message string) domain.ChatResult {
	s.gotAuthorization = authorization
	s.gotSessionID = sessionID
	s.gotMessage = message
	return s.result
}

func (s *stubChatService) History(context.Context, string) ([]domain.ChatTurn, error) {
	return s.turns, s.err
}

func TestChatHandler_AlwaysOK(t *testing.T) {
	e := echo.New()
	svc := &stubChatService{result: domain.ChatResult{
		Message: "I'm not sure I understand. Can you please clarify? You can ask about deals, orders, payments, or ask for help.",
		Data: domain.ChatData{
			Intent:    domain.IntentUnknown,
			SessionID: "session_1_abc",
		},
	}}
	h := NewChatHandler(svc)

	req, rec := jsonRequest(http.MethodPost, "/api/app/chat", `{"message":"asdfghjkl"}`)
	req.Header.Set("Authorization", "Bearer tok")

	require.NoError(t, h.Chat(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code, "an unrecognized message is still a handled chat, not an error")

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), `"intent":"UNKNOWN"`)
	assert.Contains(t, string(body.Data), `"session_id":"session_1_abc"`)

	assert.Equal(t, "Bearer tok", svc.gotAuthorization, "bearer token must be forwarded to the action self-calls")
	assert.Equal(t, "asdfghjkl", svc.gotMessage)
}

func TestChatHandler_MissingMessage(t *testing.T) {
	e := echo.New()
	h := NewChatHandler(&stubChatService{})

	for _, body := range []string{`{}`, `{"message":""}`, `{"session_id":"s"}`} {
		req, rec := jsonRequest(http.MethodPost, "/api/app/chat", body)

		require.NoError(t, h.Chat(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Message is required", decodeEnvelope(t, rec).Message)
	}
}

func TestChatHandler_SessionIDPassedThrough(t *testing.T) {
	e := echo.New()
	svc := &stubChatService{result: domain.ChatResult{Message: "Hello! How can I help you today?"}}
	h := NewChatHandler(svc)

	req, rec := jsonRequest(http.MethodPost, "/api/app/chat", `{"message":"hi","session_id":"session_9_zzz"}`)

	require.NoError(t, h.Chat(e.NewContext(req, rec)))
	assert.Equal(t, "session_9_zzz", svc.gotSessionID)
}

func TestChatHistoryHandler(t *testing.T) {
	e := echo.New()
	h := NewChatHandler(&stubChatService{turns: []domain.ChatTurn{
		{Message: "hi", Intent: domain.IntentGreeting, Reply: "Hello! How can I help you today?", CreatedAt: time.Now()},
	}})

	req, rec := jsonRequest(http.MethodGet, "/api/app/chat/history?session_id=session_9_zzz", "")

	require.NoError(t, h.ChatHistory(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Contains(t, string(body.Data), `"session_id":"session_9_zzz"`)
	assert.Contains(t, string(body.Data), `"turns"`)
}

func TestChatHistoryHandler_MissingSessionID(t *testing.T) {
	e := echo.New()
	h := NewChatHandler(&stubChatService{})

	req, rec := jsonRequest(http.MethodGet, "/api/app/chat/history", "")

	require.NoError(t, h.ChatHistory(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "session_id is required", decodeEnvelope(t, rec).Message)
}

func TestChatHistoryHandler_StoreError(t *testing.T) {
	e := echo.New()
	h := NewChatHandler(&stubChatService{err: errors.New("redis down")})

	req, rec := jsonRequest(http.MethodGet, "/api/app/chat/history?session_id=s", "")

	require.NoError(t, h.ChatHistory(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
