package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	discordAuthURL     = "https://discord.com/api/oauth2/authorize"
	discordTokenURL    = "https://discord.com/api/oauth2/token"
	discordUserInfoURL = "https://discord.com/api/users/@me"
)

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// fetchIdentity resolves the logged-in user from the provider. Any non-200
// answer means no session gets created.
func (s *Server) fetchIdentity(client *http.Client) (*Identity, error) {
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var user discordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("userinfo decode failed: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("userinfo response missing id")
	}

	identity := &Identity{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.GlobalName,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = user.Username
	}
	if user.Avatar != "" {
		identity.AvatarURL = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", user.ID, user.Avatar)
	}
	return identity, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state := newToken()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	stateCk, err := r.Cookie(stateCookie)
	if err != nil || stateCk.Value == "" || r.URL.Query().Get("state") != stateCk.Value {
		http.Redirect(w, r, "/?error=estado", http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/?error=login", http.StatusFound)
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, "/?error=login", http.StatusFound)
		return
	}

	identity, err := s.fetchIdentity(s.oauth.Client(r.Context(), token))
	if err != nil {
		http.Redirect(w, r, "/?error=login", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.sessions.Create(identity),
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Destroy(ck.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
