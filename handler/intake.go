package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/mineback/postulaciones/domain/model"
)

// startChatIntake provisions a private channel and opens the questionnaire.
// The Reserve/Bind split keeps the one-record-per-applicant invariant even
// when the same user presses the button twice before the channel exists.
func (h *Handler) startChatIntake(i *discordgo.InteractionCreate) error {
	user := interactionUser(i)

	if !h.wf.IsOpen() {
		h.respondEphemeral(i, "❌ "+model.ErrIntakeClosed.Error()+".")
		return nil
	}

	if err := h.wf.Reserve(user.ID); err != nil {
		h.respondEphemeral(i, "❌ Ya tienes una postulación en proceso.")
		return nil
	}

	categoryID, err := h.resolveCategory()
	if err != nil {
		h.wf.Release(user.ID)
		h.respondEphemeral(i, fmt.Sprintf("❌ Error: %v", err))
		return err
	}

	channel, err := h.client.GuildChannelCreateComplex(h.guildID, discordgo.GuildChannelCreateData{
		Name:     fmt.Sprintf("🔨・postulacion-%s", user.Username),
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				// @everyone shares its id with the guild
				ID:   h.guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    user.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			},
			{
				ID:    h.botID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			},
		},
	})
	if err != nil {
		h.wf.Release(user.ID)
		h.respondEphemeral(i, fmt.Sprintf("❌ Error al crear canal: %v", err))
		return fmt.Errorf("GuildChannelCreateComplex failed: %w", err)
	}

	rec := h.wf.Bind(user.ID, channel.ID)

	h.respondEphemeral(i, fmt.Sprintf("> ✅ Canal creado: <#%s>", channel.ID))

	if err := h.openQuestionnaire(channel.ID, user); err != nil {
		slog.Error("openQuestionnaire failed", slog.Any("err", err))
	}

	go h.watchdog(user.ID, channel.ID, rec.Deadline)
	return nil
}

func (h *Handler) openQuestionnaire(channelID string, user *discordgo.User) error {
	embed := &discordgo.MessageEmbed{
		Title:       "📝 Proceso de Postulación — Staff",
		Description: fmt.Sprintf("¡Hola <@%s>! Bienvenido a tu canal privado de postulación.", user.ID),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📌 Instrucciones",
				Value: "**1.** Responde cada pregunta de forma clara y detallada.\n" +
					"**2.** Revisa tus respuestas antes de enviar.\n" +
					"**3.** Tienes **34 minutos** para completar el proceso.",
				Inline: false,
			},
		},
	}
	if _, err := h.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		return fmt.Errorf("PostMessage failed: %w", err)
	}
	return h.sendQuestion(channelID, user.ID, 0)
}

func (h *Handler) sendQuestion(channelID, userID string, index int) error {
	if index >= h.bank.Len() {
		return h.sendConfirmation(channelID, userID)
	}
	_, err := h.client.ChannelMessageSend(channelID,
		fmt.Sprintf("**💬 Pregunta %d de %d:** %s", index+1, h.bank.Len(), h.bank.Question(index)))
	return err
}

// onMessageCreate drives the question loop. Messages outside the owner's
// channel, or from users without a record, are ignored without error.
func (h *Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	next, complete, accepted := h.wf.Answer(m.Author.ID, m.ChannelID, m.Content, h.bank.Len())
	if !accepted {
		return
	}

	// Best effort, the loop continues without the checkmark.
	if err := h.client.MessageReactionAdd(m.ChannelID, m.ID, "✅"); err != nil {
		slog.Warn("MessageReactionAdd failed", slog.Any("err", err))
	}

	if complete {
		if err := h.sendConfirmation(m.ChannelID, m.Author.ID); err != nil {
			slog.Error("sendConfirmation failed", slog.Any("err", err))
		}
		return
	}
	if err := h.sendQuestion(m.ChannelID, m.Author.ID, next); err != nil {
		slog.Error("sendQuestion failed", slog.Any("err", err))
	}
}

// sendConfirmation renders the full answer summary, one field per question,
// with the submit/cancel controls.
func (h *Handler) sendConfirmation(channelID, userID string) error {
	rec, ok := h.wf.Lookup(userID)
	if !ok {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "📋 Resumen de tu postulación",
		Color: embedColor,
	}
	for idx := 0; idx < h.bank.Len(); idx++ {
		answer, ok := rec.Answers[idx]
		if !ok || answer == "" {
			answer = "Sin respuesta"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("P%d: %s", idx+1, h.bank.Question(idx)),
			Value:  truncate(answer, 1024),
			Inline: false,
		})
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Enviar postulación",
					Style:    discordgo.SuccessButton,
					CustomID: customIDSubmit + ":" + userID,
				},
				discordgo.Button{
					Label:    "Cancelar",
					Style:    discordgo.DangerButton,
					CustomID: customIDCancel + ":" + userID,
				},
			},
		},
	}

	_, err := h.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		return fmt.Errorf("PostMessage failed: %w", err)
	}
	return nil
}

// watchdog enforces the intake window. It is launched once per record and
// never canceled; the post-wake Matches check is what makes an already
// submitted or cancelled application a no-op.
func (h *Handler) watchdog(userID, channelID string, deadline time.Time) {
	time.Sleep(time.Until(deadline))

	if !h.wf.Matches(userID, channelID) {
		return
	}

	if _, err := h.client.ChannelMessageSend(channelID,
		fmt.Sprintf("⏰ **Tiempo agotado.** El canal se cerrará en %d segundos.", int(h.expireGrace.Seconds()))); err != nil {
		slog.Warn("expiry announce failed", slog.Any("err", err))
	}
	time.Sleep(h.expireGrace)
	if _, err := h.client.ChannelDelete(channelID); err != nil {
		slog.Warn("ChannelDelete failed", slog.Any("err", err))
	}
	h.wf.Remove(userID)
}

func (h *Handler) submitApplication(i *discordgo.InteractionCreate, ownerID string) error {
	user := interactionUser(i)
	if user.ID != ownerID {
		h.respondEphemeral(i, "❌ Esta no es tu postulación.")
		return nil
	}

	rec, ok := h.wf.Lookup(ownerID)
	if !ok {
		h.respondEphemeral(i, "❌ Error al encontrar tu postulación.")
		return nil
	}

	fields := make([]reviewField, 0, h.bank.Len())
	answers := make(map[string]string, h.bank.Len())
	for idx := 0; idx < h.bank.Len(); idx++ {
		answer, ok := rec.Answers[idx]
		if !ok || answer == "" {
			answer = "Sin respuesta"
		}
		fields = append(fields, reviewField{Name: h.bank.Question(idx), Value: answer})
		answers[h.bank.Question(idx)] = answer
	}

	sub := &model.Submission{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Source:    "chat",
		Status:    string(model.StatusPending),
		CreatedAt: time.Now(),
	}
	if raw, err := json.Marshal(answers); err == nil {
		sub.Answers = string(raw)
	}

	// A failed review post is accepted data loss: the submission is archived
	// but produces no reviewer-visible artifact, and is not retried.
	msg, err := h.postReviewMessage(reviewPost{
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL(""),
		Source:    "chat",
		Fields:    fields,
	})
	if err != nil {
		slog.Error("postReviewMessage failed", slog.Any("err", err))
	} else {
		sub.ReviewMessageID = msg.ID
	}

	if err := h.ds.SaveSubmission(sub); err != nil {
		slog.Error("SaveSubmission failed", slog.Any("err", err))
	}

	h.respond(i, fmt.Sprintf("✅ **¡Postulación enviada!** Este canal se cerrará en %d segundos.", int(h.closeGrace.Seconds())))

	res := h.sendPendingDM(user.ID)
	h.logDelivery(res)

	h.wf.Remove(ownerID)

	go h.deleteChannelAfter(i.ChannelID, h.closeGrace)
	return nil
}

func (h *Handler) cancelApplication(i *discordgo.InteractionCreate, ownerID string) error {
	user := interactionUser(i)
	if user.ID != ownerID {
		h.respondEphemeral(i, "❌ Esta no es tu postulación.")
		return nil
	}

	h.respond(i, fmt.Sprintf("❌ Postulación cancelada. Cerrando en %d segundos.", int(h.closeGrace.Seconds())))
	h.wf.Remove(ownerID)

	go h.deleteChannelAfter(i.ChannelID, h.closeGrace)
	return nil
}

func (h *Handler) deleteChannelAfter(channelID string, grace time.Duration) {
	time.Sleep(grace)
	if _, err := h.client.ChannelDelete(channelID); err != nil {
		slog.Warn("ChannelDelete failed", slog.Any("err", err))
	}
}

// truncate cuts to at most max characters. Embed field limits are in
// characters, and a byte slice could split a rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
