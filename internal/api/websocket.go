package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/generate"
)

// Frames exchanged on the tutor socket. The client sends "start" once and
// then "message" frames; the server answers each with "reply" or "error".
const (
	frameStart   = "start"
	frameMessage = "message"
	frameReply   = "reply"
	frameError   = "error"
)

type wsFrame struct {
	Type        string   `json:"type"`
	Content     string   `json:"content,omitempty"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// TutorSocket runs a tutor conversation over a websocket. The transcript
// lives for the connection only.
func (h *Handler) TutorSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var history []generate.Turn

	for {
		var in wsFrame
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("tutor socket closed", zap.Error(err))
			}
			return
		}

		var out wsFrame
		switch in.Type {
		case frameStart:
			cb, err := h.gen.StartTutorSession(ctx, h.machine)
			if err != nil {
				out = errorFrame(err)
				break
			}
			history = []generate.Turn{{Role: generate.SpeakerTutor, Content: cb.WelcomeMessage}}
			out = wsFrame{Type: frameReply, Content: cb.WelcomeMessage}
		case frameMessage:
			reply, err := h.gen.ReplyInSession(ctx, h.machine, history, in.Content)
			if err != nil {
				out = errorFrame(err)
				break
			}
			history = append(history,
				generate.Turn{Role: generate.SpeakerStudent, Content: in.Content},
				generate.Turn{Role: generate.SpeakerTutor, Content: reply})
			out = wsFrame{Type: frameReply, Content: reply}
		default:
			out = wsFrame{Type: frameError, Error: "Onbekend berichttype: " + in.Type}
		}

		if err := conn.WriteJSON(out); err != nil {
			h.logger.Debug("tutor socket write failed", zap.Error(err))
			return
		}
	}
}

func errorFrame(err error) wsFrame {
	var gerr *generate.Error
	if errors.As(err, &gerr) {
		return wsFrame{Type: frameError, Error: gerr.Message, Suggestions: gerr.Suggestions}
	}
	return wsFrame{Type: frameError, Error: err.Error()}
}
