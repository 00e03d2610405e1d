package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mineback/postulaciones/config"
	"github.com/mineback/postulaciones/domain/infra"
	"github.com/mineback/postulaciones/domain/model"
	"golang.org/x/oauth2"
)

const (
	sessionCookie = "sesion"
	stateCookie   = "oauth_state"
	sessionTTL    = 12 * time.Hour
	publicDir     = "web/public"
)

// Server is the web intake surface. It runs on its own goroutines; the only
// structures shared with the bot side are the submission queue, the
// datastore and the intake-open probe, all safe for concurrent use.
type Server struct {
	cfg        *config.Config
	queue      *model.SubmissionQueue
	ds         infra.Datastore
	sessions   *SessionStore
	oauth      *oauth2.Config
	intakeOpen func() bool

	// Serializes the duplicate check and the archive write in handleEnviar.
	submitMu sync.Mutex

	userInfoURL string
}

func NewServer(cfg *config.Config, queue *model.SubmissionQueue, ds infra.Datastore, intakeOpen func() bool) *Server {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	return &Server{
		cfg:      cfg,
		queue:    queue,
		ds:       ds,
		sessions: NewSessionStore(sessionTTL),
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  base + "/callback",
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthURL,
				TokenURL: discordTokenURL,
			},
		},
		intakeOpen:  intakeOpen,
		userInfoURL: discordUserInfoURL,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet)
	r.HandleFunc("/callback", s.handleCallback).Methods(http.MethodGet)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)
	r.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/ya_postulo", s.handleYaPostulo).Methods(http.MethodGet)
	r.HandleFunc("/enviar", s.handleEnviar).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(publicDir))))
	return r
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Web server listening", slog.String("addr", s.cfg.ListenAddr))
	return srv.ListenAndServe()
}

func (s *Server) identity(r *http.Request) *Identity {
	ck, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	identity, ok := s.sessions.Get(ck.Value)
	if !ok {
		return nil
	}
	return identity
}

// handleIndex picks between login, closed-notice and the application form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	switch {
	case s.identity(r) == nil:
		s.servePage(w, r, "login.html",
			`<html><body><h1>Postulaciones Staff</h1><a href="/login">Iniciar sesión con Discord</a></body></html>`)
	case !s.intakeOpen():
		s.servePage(w, r, "cerrado.html",
			`<html><body><h1>Las postulaciones están cerradas</h1></body></html>`)
	default:
		s.servePage(w, r, "formulario.html",
			`<html><body><h1>Formulario de postulación</h1></body></html>`)
	}
}

// servePage serves the real page from web/public when present; the inline
// fallback keeps the flow testable without the static assets.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, name, fallback string) {
	path := filepath.Join(publicDir, name)
	if _, err := os.Stat(path); err == nil {
		http.ServeFile(w, r, path)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, fallback)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": identity})
}

func (s *Server) handleYaPostulo(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false})
		return
	}
	submitted, err := s.ds.HasSubmitted(identity.ID)
	if err != nil {
		slog.Error("HasSubmitted failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enviado": submitted})
}

// handleEnviar accepts one application per identity, stamps the session's
// identity onto the payload and hands it to the drain loop. Marking the
// applicant as seen happens here, not at drain time, so a double submit in
// the 3s polling window still gets the 409.
func (s *Server) handleEnviar(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "sin_sesion"})
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || len(fields) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "sin_datos"})
		return
	}

	// Check and archive under one lock: two concurrent submits from the
	// same identity must not both pass the duplicate check.
	s.submitMu.Lock()
	submitted, err := s.ds.HasSubmitted(identity.ID)
	if err != nil {
		s.submitMu.Unlock()
		slog.Error("HasSubmitted failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false})
		return
	}
	if submitted {
		s.submitMu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": "ya_postulo"})
		return
	}

	sub := &model.Submission{
		ID:        uuid.NewString(),
		UserID:    identity.ID,
		Username:  identity.Username,
		Source:    "web",
		Status:    string(model.StatusPending),
		CreatedAt: time.Now(),
	}
	if raw, err := json.Marshal(fields); err == nil {
		sub.Answers = string(raw)
	}
	if err := s.ds.SaveSubmission(sub); err != nil {
		s.submitMu.Unlock()
		slog.Error("SaveSubmission failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false})
		return
	}
	s.submitMu.Unlock()

	s.queue.Push(&model.WebSubmission{
		SubmissionID: sub.ID,
		UserID:       identity.ID,
		Username:     identity.Username,
		DisplayName:  identity.DisplayName,
		AvatarURL:    identity.AvatarURL,
		Fields:       fields,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writeJSON failed", slog.Any("err", err))
	}
}
