package handler

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mineback/postulaciones/domain/model"
)

const drainInterval = 3 * time.Second

// Labels for the known web form fields, in presentation order.
var webFieldLabels = []struct {
	Key   string
	Label string
}{
	{"edad", "🎂 Edad"},
	{"razon", "❓ ¿Por qué quiere ser staff?"},
	{"experiencia", "📂 Experiencia previa"},
	{"horas", "⏰ Disponibilidad diaria"},
	{"comandos", "⌨️ Comandos de moderación"},
	{"conflicto", "⚔️ Manejo de conflictos"},
	{"hacks", "🚫 Protocolo anti-hacks"},
	{"extra", "💬 Información adicional"},
}

// StartDrainLoop moves queued web submissions into the review workflow, one
// per tick. A failed item is logged and dropped, never requeued, so one bad
// submission cannot stall the queue. The gateway replays Ready on
// reconnect, so repeated calls must not start a second loop.
func (h *Handler) StartDrainLoop() {
	h.drainOnce.Do(func() {
		h.drainLoops++
		go func() {
			ticker := time.NewTicker(drainInterval)
			defer ticker.Stop()
			for range ticker.C {
				sub := h.queue.Pop()
				if sub == nil {
					continue
				}
				if err := h.processWebSubmission(sub); err != nil {
					slog.Error("processWebSubmission failed",
						slog.String("user_id", sub.UserID),
						slog.Any("err", err))
				}
			}
		}()
	})
}

func (h *Handler) processWebSubmission(sub *model.WebSubmission) error {
	username := sub.DisplayName
	if username == "" {
		username = sub.Username
	}

	avatar := sub.AvatarURL
	if avatar == "" {
		if member, err := h.getMember(sub.UserID); err == nil && member.User != nil {
			avatar = member.User.AvatarURL("")
		}
	}

	msg, err := h.postReviewMessage(reviewPost{
		UserID:    sub.UserID,
		Username:  username,
		AvatarURL: avatar,
		Source:    "web",
		Fields:    orderedWebFields(sub.Fields),
	})
	if err != nil {
		return fmt.Errorf("postReviewMessage failed: %w", err)
	}

	if sub.SubmissionID != "" {
		if err := h.ds.UpdateSubmissionReview(sub.UserID, sub.SubmissionID, msg.ID); err != nil {
			slog.Warn("UpdateSubmissionReview failed", slog.Any("err", err))
		}
	}

	h.logDelivery(h.sendPendingDM(sub.UserID))
	return nil
}

// orderedWebFields lays out the known fields first, then any numbered extra
// questions (pregunta_1, pregunta_2, ...) in index order.
func orderedWebFields(fields map[string]string) []reviewField {
	var out []reviewField
	used := map[string]bool{}
	for _, f := range webFieldLabels {
		if v := strings.TrimSpace(fields[f.Key]); v != "" {
			out = append(out, reviewField{Name: f.Label, Value: v})
		}
		used[f.Key] = true
	}

	var extras []string
	for k := range fields {
		if !used[k] && strings.HasPrefix(k, "pregunta_") {
			extras = append(extras, k)
		}
	}
	sort.Slice(extras, func(i, j int) bool {
		a, _ := strconv.Atoi(strings.TrimPrefix(extras[i], "pregunta_"))
		b, _ := strconv.Atoi(strings.TrimPrefix(extras[j], "pregunta_"))
		return a < b
	})
	for _, k := range extras {
		if v := strings.TrimSpace(fields[k]); v != "" {
			name := "❓ Pregunta " + strings.TrimPrefix(k, "pregunta_")
			out = append(out, reviewField{Name: name, Value: v})
		}
	}
	return out
}
