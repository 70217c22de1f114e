/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains HandleStylistSocket, which upgrades the connection and runs
one stylist conversation per socket: each inbound text frame is answered with
the model's reply, with the conversation history kept on the connection.
*/
package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"bushnoor/internal/app/stylist"
	"bushnoor/internal/pkg/errs"
	"bushnoor/internal/pkg/limiter"
	"bushnoor/internal/pkg/logx"
	"bushnoor/internal/pkg/resp"
)

const (
	wsWriteWait  = 10 * time.Second
	wsIdleWait   = 5 * time.Minute
	wsMaxMessage = 4096
)

// StylistFrame is the wire format for both directions of the stylist socket.
type StylistFrame struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// HandleStylistSocket creates an HTTP HandlerFunc that upgrades the request
// and serves a 1:1 stylist conversation until the client disconnects.
func HandleStylistSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}
		defer conn.Close()

		conn.SetReadLimit(wsMaxMessage)

		greeting := StylistFrame{Role: "model", Text: stylist.Greeting}
		if err := writeFrame(conn, greeting); err != nil {
			return
		}

		history := []stylist.Message{{Role: "model", Text: stylist.Greeting}}

		for {
			_ = conn.SetReadDeadline(time.Now().Add(wsIdleWait))

			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logx.Warn("Stylist socket closed unexpectedly", "error", err.Error())
				}
				return
			}

			var frame StylistFrame
			if err := json.Unmarshal(raw, &frame); err != nil {
				// Tolerate bare text frames from simple clients.
				frame.Text = string(raw)
			}

			text := strings.TrimSpace(frame.Text)
			if text == "" || utf8.RuneCountInString(text) > MaxChatMessageLength {
				continue
			}

			reply := deps.Stylist.SendMessage(r.Context(), text, history)

			history = append(history,
				stylist.Message{Role: "user", Text: text},
				stylist.Message{Role: "model", Text: reply},
			)
			if len(history) > 2*maxChatHistoryTurns {
				history = history[len(history)-2*maxChatHistoryTurns:]
			}

			if err := writeFrame(conn, StylistFrame{Role: "model", Text: reply}); err != nil {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame StylistFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(frame)
}
