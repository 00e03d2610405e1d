package handler

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jellydator/ttlcache/v3"
	"github.com/mineback/postulaciones/config"
	"github.com/mineback/postulaciones/domain/infra"
	"github.com/mineback/postulaciones/domain/model"
)

const (
	cmdOpen    = "postulaciones_abrir"
	cmdClose   = "postulaciones_cerrar"
	cmdSetup   = "postulaciones_setup"
	cmdHelp    = "postulaciones_ayuda"
	cmdHistory = "postulaciones_historial"
)

const (
	customIDApplyChat = "postular_chat"
	customIDSubmit    = "enviar_postulacion"
	customIDCancel    = "cancelar_postulacion"
	customIDAccept    = "aceptar_postulacion"
	customIDReject    = "rechazar_postulacion"
)

const embedColor = 0xe74c3c

type Handler struct {
	session     *discordgo.Session
	client      infra.DiscordAPI
	ds          infra.Datastore
	ai          *infra.OpenAI
	cfg         *config.Config
	bank        *model.QuestionBank
	queue       *model.SubmissionQueue
	wf          *Workflow
	memberCache *ttlcache.Cache[string, *discordgo.Member]

	botID   string
	guildID string

	// Grace delays, shortened in tests.
	closeGrace  time.Duration
	expireGrace time.Duration

	drainOnce  sync.Once
	drainLoops int
}

func NewHandler(cfg *config.Config, bank *model.QuestionBank, queue *model.SubmissionQueue, ds infra.Datastore) (*Handler, error) {
	ai, err := infra.NewOpenAI()
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	h := &Handler{
		session:     session,
		client:      session,
		ds:          ds,
		ai:          ai,
		cfg:         cfg,
		bank:        bank,
		queue:       queue,
		wf:          NewWorkflow(),
		memberCache: ttlcache.New(ttlcache.WithTTL[string, *discordgo.Member](24 * time.Hour)),
		guildID:     cfg.GuildID,
		closeGrace:  5 * time.Second,
		expireGrace: 10 * time.Second,
	}
	go h.memberCache.Start()
	return h, nil
}

// IntakeOpen is handed to the web server as its intake-open probe.
func (h *Handler) IntakeOpen() bool {
	return h.wf.IsOpen()
}

// Handle connects to the gateway and blocks until SIGINT/SIGTERM.
func (h *Handler) Handle() error {
	h.session.AddHandler(h.onReady)
	h.session.AddHandler(h.onMessageCreate)
	h.session.AddHandler(h.onInteractionCreate)

	if err := h.session.Open(); err != nil {
		return fmt.Errorf("gateway open failed: %w", err)
	}
	defer h.session.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	return nil
}

func (h *Handler) onReady(s *discordgo.Session, r *discordgo.Ready) {
	h.botID = r.User.ID
	if h.guildID == "" && len(r.Guilds) > 0 {
		h.guildID = r.Guilds[0].ID
	}
	if err := h.registerCommands(); err != nil {
		slog.Error("registerCommands failed", slog.Any("err", err))
	}
	h.StartDrainLoop()
	slog.Info("Bot ready", slog.String("bot_id", h.botID), slog.String("guild_id", h.guildID))
}

func (h *Handler) registerCommands() error {
	adminOnly := int64(discordgo.PermissionAdministrator)
	commands := []*discordgo.ApplicationCommand{
		{Name: cmdOpen, Description: "Abre las postulaciones (solo administradores)", DefaultMemberPermissions: &adminOnly},
		{Name: cmdClose, Description: "Cierra las postulaciones (solo administradores)", DefaultMemberPermissions: &adminOnly},
		{Name: cmdSetup, Description: "Publica el anuncio de postulaciones (solo administradores)", DefaultMemberPermissions: &adminOnly},
		{Name: cmdHelp, Description: "Ayuda sobre el sistema de postulaciones"},
		{Name: cmdHistory, Description: "Muestra las últimas postulaciones archivadas"},
	}
	for _, cmd := range commands {
		if _, err := h.session.ApplicationCommandCreate(h.botID, h.guildID, cmd); err != nil {
			return fmt.Errorf("create command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

func (h *Handler) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(i)
	}
}

func (h *Handler) handleCommand(i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case cmdOpen:
		if !h.requireAdmin(i) {
			return
		}
		h.wf.SetOpen(true)
		h.respondEphemeral(i, "✅ Postulaciones abiertas.")
	case cmdClose:
		if !h.requireAdmin(i) {
			return
		}
		h.wf.SetOpen(false)
		h.respondEphemeral(i, "✅ Postulaciones cerradas.")
	case cmdSetup:
		if !h.requireAdmin(i) {
			return
		}
		if err := h.postAnnouncement(i); err != nil {
			slog.Error("postAnnouncement failed", slog.Any("err", err))
		}
	case cmdHelp:
		h.showHelp(i)
	case cmdHistory:
		if err := h.showHistory(i); err != nil {
			slog.Error("showHistory failed", slog.Any("err", err))
		}
	}
}

func (h *Handler) handleComponent(i *discordgo.InteractionCreate) {
	customID, arg, _ := strings.Cut(i.MessageComponentData().CustomID, ":")
	switch customID {
	case customIDApplyChat:
		if err := h.startChatIntake(i); err != nil {
			slog.Error("startChatIntake failed", slog.Any("err", err))
		}
	case customIDSubmit:
		if err := h.submitApplication(i, arg); err != nil {
			slog.Error("submitApplication failed", slog.Any("err", err))
		}
	case customIDCancel:
		if err := h.cancelApplication(i, arg); err != nil {
			slog.Error("cancelApplication failed", slog.Any("err", err))
		}
	case customIDAccept:
		if err := h.handleDecision(i, arg, model.StatusAccepted); err != nil {
			slog.Error("handleDecision failed", slog.Any("err", err))
		}
	case customIDReject:
		if err := h.handleDecision(i, arg, model.StatusRejected); err != nil {
			slog.Error("handleDecision failed", slog.Any("err", err))
		}
	}
}

// interactionUser works for both guild (Member) and DM (User) interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func (h *Handler) requireAdmin(i *discordgo.InteractionCreate) bool {
	if i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	h.respondEphemeral(i, "❌ Necesitas permisos de administrador.")
	return false
}

func (h *Handler) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	err := h.client.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("InteractionRespond failed", slog.Any("err", err))
	}
}

func (h *Handler) respond(i *discordgo.InteractionCreate, content string) {
	err := h.client.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		slog.Error("InteractionRespond failed", slog.Any("err", err))
	}
}

func (h *Handler) getMember(userID string) (*discordgo.Member, error) {
	cacheKey := "member_" + userID
	if member := h.memberCache.Get(cacheKey); member != nil {
		return member.Value(), nil
	}
	member, err := h.client.GuildMember(h.guildID, userID)
	if err != nil {
		return nil, err
	}
	h.memberCache.Set(cacheKey, member, ttlcache.DefaultTTL)
	return member, nil
}

func (h *Handler) postAnnouncement(i *discordgo.InteractionCreate) error {
	h.respondEphemeral(i, "✅ ¡Configurado!")

	embed := &discordgo.MessageEmbed{
		Description: strings.Join([]string{
			"# 📝 ¡POSTULACIONES ABIERTAS!",
			"",
			"Postúlate para ser parte del Staff-Team. ⚔️",
			"",
			"🌐 **Opción Web:** rellena el formulario en nuestra página.",
			"💬 **Opción Chat:** responde las preguntas en Discord.",
			"",
			"# Requisitos:",
			"• Mínimo 14 años.",
			"• Historial limpio.",
			"• No ser staff en otro servidor.",
			"• Buena ortografía y madurez.",
			"",
			"🚀 **¡Buena suerte!**",
		}, "\n"),
		Color: embedColor,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Postularse (Chat)",
					Style:    discordgo.PrimaryButton,
					CustomID: customIDApplyChat,
				},
				discordgo.Button{
					Label: "Postularse (Web)",
					Style: discordgo.LinkButton,
					URL:   h.cfg.BaseURL,
				},
			},
		},
	}

	_, err := h.client.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		return fmt.Errorf("PostMessage failed: %w", err)
	}
	return nil
}

func (h *Handler) showHelp(i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "ℹ️ Ayuda — Postulaciones",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🌐 Web", Value: "Clic en **Postularse (Web)** → abre la página del formulario.", Inline: false},
			{Name: "💬 Chat", Value: "Clic en **Postularse (Chat)** → responde en tu canal privado.", Inline: false},
			{Name: "⏰ Tiempo", Value: "34 minutos para completar por chat.", Inline: false},
		},
	}
	err := h.client.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("InteractionRespond failed", slog.Any("err", err))
	}
}

func (h *Handler) showHistory(i *discordgo.InteractionCreate) error {
	subs, err := h.ds.GetLatestSubmissions()
	if err != nil {
		h.respondEphemeral(i, "📭 No se pudo obtener el historial.")
		return err
	}
	if len(subs) == 0 {
		h.respondEphemeral(i, "📭 No hay postulaciones archivadas.")
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "📜 Últimas postulaciones",
		Color: embedColor,
	}
	for _, sub := range subs {
		name := fmt.Sprintf("%s (%s)", sub.Username, sub.Source)
		value := fmt.Sprintf("Estado: `%s` — %s", model.Status(sub.Status).Display(), sub.CreatedAt.Format("2006-01-02 15:04"))
		if sub.DecidedBy != "" {
			value += fmt.Sprintf(" — decidida por <@%s>", sub.DecidedBy)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: false})
	}

	err = h.client.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	return err
}
