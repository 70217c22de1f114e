package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"bushnoor/internal/app/stylist"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/req"
	"bushnoor/internal/pkg/resp"
)

// MaxChatMessageLength bounds a single stylist chat message.
const MaxChatMessageLength = 1000

// maxChatHistoryTurns bounds the replayed conversation; older turns are dropped.
const maxChatHistoryTurns = 20

type ChatInput struct {
	Message string            `json:"message"`
	History []stylist.Message `json:"history"`
}

// HandleChat answers one stylist message. Generation failures are absorbed by
// the stylist service and come back as its fallback sentence, so this handler
// never reports an external error to the client.
func HandleChat(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ChatInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		message := strings.TrimSpace(input.Message)
		if message == "" || utf8.RuneCountInString(message) > MaxChatMessageLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		history := input.History
		if len(history) > maxChatHistoryTurns {
			history = history[len(history)-maxChatHistoryTurns:]
		}

		reply := deps.Stylist.SendMessage(r.Context(), message, history)

		resp.RespondSuccess(w, r, map[string]any{
			"reply": reply,
		})
	}
}
