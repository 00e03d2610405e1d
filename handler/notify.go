package handler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mineback/postulaciones/domain/model"
)

// DeliveryResult is the explicit outcome of one notification attempt.
// Deliveries are best effort by design: the workflow's forward progress
// never depends on one succeeding, but every outcome is logged in one place
// instead of being swallowed at each call site.
type DeliveryResult struct {
	Kind      string
	Recipient string
	Delivered bool
	Skipped   bool
	Err       error
}

func (h *Handler) logDelivery(res DeliveryResult) {
	switch {
	case res.Err != nil:
		slog.Warn("delivery failed",
			slog.String("kind", res.Kind),
			slog.String("recipient", res.Recipient),
			slog.Any("err", res.Err))
	case res.Skipped:
		slog.Info("delivery skipped",
			slog.String("kind", res.Kind),
			slog.String("recipient", res.Recipient))
	default:
		slog.Info("delivery ok",
			slog.String("kind", res.Kind),
			slog.String("recipient", res.Recipient))
	}
}

func statusEmbed(status model.Status) *discordgo.MessageEmbed {
	var description string
	switch status {
	case model.StatusAccepted:
		description = "¡Tu postulación fue **aceptada**! Te contactaremos pronto. 🎊"
	case model.StatusRejected:
		description = "Tu postulación fue **rechazada**. Puedes reintentar en 14 días. 💪"
	default:
		description = "Tu postulación está **pendiente de revisión**. Te notificaremos pronto."
	}
	title := "ACTUALIZACIÓN DE TU POSTULACIÓN"
	if status == model.StatusPending {
		title = "HEMOS RECIBIDO TU POSTULACIÓN"
	}
	marker := ""
	switch status {
	case model.StatusAccepted:
		marker = " ✅"
	case model.StatusRejected:
		marker = " ❌"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       status.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Estado", Value: fmt.Sprintf("> `%s`%s", status.Display(), marker)},
		},
	}
}

// sendPendingDM sends the "we got it" DM and records the notification handle
// only when delivery is confirmed.
func (h *Handler) sendPendingDM(userID string) DeliveryResult {
	res := DeliveryResult{Kind: "pending_dm", Recipient: userID}
	channel, err := h.client.UserChannelCreate(userID)
	if err != nil {
		res.Err = fmt.Errorf("UserChannelCreate failed: %w", err)
		return res
	}
	msg, err := h.client.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{statusEmbed(model.StatusPending)},
	})
	if err != nil {
		res.Err = fmt.Errorf("PostMessage failed: %w", err)
		return res
	}
	h.wf.SetNotice(userID, NoticeHandle{ChannelID: channel.ID, MessageID: msg.ID})
	res.Delivered = true
	return res
}

func (h *Handler) sendTerminalDM(userID string, status model.Status) DeliveryResult {
	res := DeliveryResult{Kind: "terminal_dm", Recipient: userID}
	channel, err := h.client.UserChannelCreate(userID)
	if err != nil {
		res.Err = fmt.Errorf("UserChannelCreate failed: %w", err)
		return res
	}
	if _, err := h.client.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{statusEmbed(status)},
	}); err != nil {
		res.Err = fmt.Errorf("PostMessage failed: %w", err)
		return res
	}
	res.Delivered = true
	return res
}

// editPendingDM rewrites the earlier pending DM in place: status text
// replaced, color changed, no pending imagery left behind. Missing handle
// means there is no DM to edit.
func (h *Handler) editPendingDM(userID string, status model.Status) DeliveryResult {
	res := DeliveryResult{Kind: "pending_dm_edit", Recipient: userID}
	handle, ok := h.wf.Notice(userID)
	if !ok {
		res.Skipped = true
		return res
	}
	edit := discordgo.NewMessageEdit(handle.ChannelID, handle.MessageID)
	embeds := []*discordgo.MessageEmbed{statusEmbed(status)}
	edit.Embeds = &embeds
	if _, err := h.client.ChannelMessageEditComplex(edit); err != nil {
		res.Err = fmt.Errorf("MessageEdit failed: %w", err)
		return res
	}
	res.Delivered = true
	return res
}

// announceResult posts the public outcome to the results channel. The
// channel is never auto-created; when absent the announcement is skipped.
func (h *Handler) announceResult(userID string, status model.Status) DeliveryResult {
	res := DeliveryResult{Kind: "results_announcement", Recipient: userID}
	channelID := h.resolveResultsChannel()
	if channelID == "" {
		res.Skipped = true
		return res
	}

	embed := &discordgo.MessageEmbed{
		Color:     embedColor,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if status == model.StatusAccepted {
		embed.Title = "[INGRESO] Postulante admitido en el Staff"
		embed.Description = fmt.Sprintf("<@%s> ha sido **aceptado**. ¡Bienvenido! 🎊", userID)
		if h.cfg.AcceptedImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: h.cfg.AcceptedImageURL}
		}
	} else {
		embed.Title = "[RESULTADO] Postulación rechazada"
		embed.Description = fmt.Sprintf("<@%s> no fue seleccionado. Puede reintentar en 14 días.", userID)
		if h.cfg.RejectedImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: h.cfg.RejectedImageURL}
		}
	}

	if _, err := h.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		res.Err = fmt.Errorf("PostMessage failed: %w", err)
		return res
	}
	res.Delivered = true
	return res
}
