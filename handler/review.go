package handler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mineback/postulaciones/domain/model"
)

const (
	categoryName       = "📝 Postulaciones"
	reviewChannelName  = "postulaciones-staff"
	resultsChannelName = "resultados-postulaciones"
)

// resolveCategory: explicit id → name lookup → auto-create (persisted).
func (h *Handler) resolveCategory() (string, error) {
	if h.cfg.CategoryID != "" {
		return h.cfg.CategoryID, nil
	}
	if id := h.findChannelByName(categoryName, discordgo.ChannelTypeGuildCategory); id != "" {
		if err := h.cfg.SetCategoryID(id); err != nil {
			slog.Warn("persist category id failed", slog.Any("err", err))
		}
		return id, nil
	}
	channel, err := h.client.GuildChannelCreateComplex(h.guildID, discordgo.GuildChannelCreateData{
		Name: categoryName,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return "", fmt.Errorf("create category failed: %w", err)
	}
	if err := h.cfg.SetCategoryID(channel.ID); err != nil {
		slog.Warn("persist category id failed", slog.Any("err", err))
	}
	return channel.ID, nil
}

// resolveReviewChannel: explicit id → name lookup → auto-create (persisted).
func (h *Handler) resolveReviewChannel() (string, error) {
	if h.cfg.ReviewChannelID != "" {
		return h.cfg.ReviewChannelID, nil
	}
	if id := h.findChannelByName(reviewChannelName, discordgo.ChannelTypeGuildText); id != "" {
		if err := h.cfg.SetReviewChannelID(id); err != nil {
			slog.Warn("persist review channel id failed", slog.Any("err", err))
		}
		return id, nil
	}
	channel, err := h.client.GuildChannelCreateComplex(h.guildID, discordgo.GuildChannelCreateData{
		Name: reviewChannelName,
		Type: discordgo.ChannelTypeGuildText,
	})
	if err != nil {
		return "", fmt.Errorf("create review channel failed: %w", err)
	}
	if err := h.cfg.SetReviewChannelID(channel.ID); err != nil {
		slog.Warn("persist review channel id failed", slog.Any("err", err))
	}
	return channel.ID, nil
}

// resolveResultsChannel: explicit id → name lookup → absent. Deliberately
// never auto-created; announcements are skipped when it does not exist.
func (h *Handler) resolveResultsChannel() string {
	if h.cfg.ResultsChannelID != "" {
		return h.cfg.ResultsChannelID
	}
	return h.findChannelByName(resultsChannelName, discordgo.ChannelTypeGuildText)
}

func (h *Handler) findChannelByName(name string, chanType discordgo.ChannelType) string {
	channels, err := h.client.GuildChannels(h.guildID)
	if err != nil {
		slog.Warn("GuildChannels failed", slog.Any("err", err))
		return ""
	}
	for _, ch := range channels {
		if ch.Type == chanType && ch.Name == name {
			return ch.ID
		}
	}
	return ""
}

type reviewField struct {
	Name  string
	Value string
}

type reviewPost struct {
	UserID    string
	Username  string
	AvatarURL string
	Source    string // chat | web
	Fields    []reviewField
}

// postReviewMessage renders one application into the review channel with the
// accept/reject controls attached.
func (h *Handler) postReviewMessage(post reviewPost) (*discordgo.Message, error) {
	channelID, err := h.resolveReviewChannel()
	if err != nil {
		return nil, err
	}

	title := "🔑 Nueva postulación de staff"
	description := fmt.Sprintf("**Usuario:** <@%s> | **ID:** %s", post.UserID, post.UserID)
	if post.Source == "web" {
		title = "🌐 Nueva postulación WEB — Staff"
		description = fmt.Sprintf("📌 **Discord:** `%s`", post.Username)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       embedColor,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Postulación de %s", post.Username)},
	}
	if post.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: post.AvatarURL}
	}
	for _, f := range post.Fields {
		if f.Value == "" {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  truncate(f.Value, 1024),
			Inline: false,
		})
	}

	if h.ai != nil {
		answers := make(map[string]string, len(post.Fields))
		for _, f := range post.Fields {
			answers[f.Name] = f.Value
		}
		summary, err := h.ai.SummarizeApplication(post.Username, answers)
		if err != nil {
			slog.Warn("SummarizeApplication failed", slog.Any("err", err))
		} else if summary != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "🤖 Resumen",
				Value:  truncate(summary, 1024),
				Inline: false,
			})
		}
	}

	msg, err := h.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: decisionButtons(post.UserID, false),
	})
	if err != nil {
		return nil, fmt.Errorf("PostMessage failed: %w", err)
	}
	return msg, nil
}

func decisionButtons(applicantID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Aceptar",
					Style:    discordgo.SuccessButton,
					CustomID: customIDAccept + ":" + applicantID,
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Rechazar",
					Style:    discordgo.DangerButton,
					CustomID: customIDReject + ":" + applicantID,
					Disabled: disabled,
				},
			},
		},
	}
}

// handleDecision is the PendingReview → terminal transition. The TryDecide
// guard makes the first activation win; a second click while the disable is
// still in flight gets an ephemeral rejection instead of double-posting.
func (h *Handler) handleDecision(i *discordgo.InteractionCreate, applicantID string, status model.Status) error {
	if i.Message == nil {
		return nil
	}
	if !h.wf.TryDecide(i.Message.ID) {
		h.respondEphemeral(i, "❌ Esta postulación ya fue decidida.")
		return nil
	}

	reviewer := interactionUser(i)

	h.logDelivery(h.announceResult(applicantID, status))
	h.logDelivery(h.sendTerminalDM(applicantID, status))
	h.logDelivery(h.editPendingDM(applicantID, status))

	// Disable the controls and retitle the review post in one edit.
	title := "✅ POSTULACIÓN ACEPTADA"
	if status == model.StatusRejected {
		title = "❌ POSTULACIÓN RECHAZADA"
	}
	embeds := i.Message.Embeds
	if len(embeds) > 0 {
		embeds[0].Title = title
	}
	err := h.client.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: decisionButtons(applicantID, true),
		},
	})
	if err != nil {
		slog.Error("InteractionRespond failed", slog.Any("err", err))
	}

	audit := fmt.Sprintf("> ✅ Aceptada por <@%s>", reviewer.ID)
	if status == model.StatusRejected {
		audit = fmt.Sprintf("> ❌ Rechazada por <@%s>", reviewer.ID)
	}
	if _, err := h.client.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{Content: audit}); err != nil {
		slog.Warn("FollowupMessageCreate failed", slog.Any("err", err))
	}

	if err := h.ds.UpdateSubmissionStatus(i.Message.ID, string(status), reviewer.ID); err != nil {
		slog.Warn("UpdateSubmissionStatus failed", slog.Any("err", err))
	}
	return nil
}
