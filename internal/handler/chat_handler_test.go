package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bushnoor/internal/app/stylist"
	"bushnoor/internal/pkg/errs"
)

func TestChatReturnsStylistReply(t *testing.T) {
	env := newTestEnv(t)

	_, res := env.do(t, http.MethodPost, "/api/chat", "", map[string]any{
		"message": "What should I wear to a reception?",
		"history": []stylist.Message{
			{Role: "model", Text: stylist.Greeting},
		},
	})
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Reply string `json:"reply"`
	}](t, res)
	assert.Equal(t, "A saree would be lovely.", data.Reply)
}

func TestChatRejectsEmptyOrOversizedMessage(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "whitespace only", message: "   "},
		{name: "too long", message: strings.Repeat("a", MaxChatMessageLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := env.do(t, http.MethodPost, "/api/chat", "", map[string]string{"message": tt.message})
			assert.Equal(t, errs.ErrInvalidParams, res.Code)
		})
	}
}

func TestChatFallbackWhenModelSilent(t *testing.T) {
	env := newTestEnv(t)
	env.stylist.reply = ""

	_, res := env.do(t, http.MethodPost, "/api/chat", "", map[string]string{
		"message": "Hello?",
	})
	require.Zero(t, res.Code)

	data := decodeData[struct {
		Reply string `json:"reply"`
	}](t, res)
	assert.Equal(t, stylist.FallbackReply, data.Reply)
}
