package web

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Identity is the minimal applicant identity kept server-side after a
// successful OAuth2 login. The core trusts whatever the provider returned.
type Identity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// SessionStore maps random cookie tokens to identities. Tokens are
// unguessable capability strings, so no signing is needed.
type SessionStore struct {
	cache *ttlcache.Cache[string, *Identity]
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	cache := ttlcache.New(ttlcache.WithTTL[string, *Identity](ttl))
	go cache.Start()
	return &SessionStore{cache: cache}
}

func (s *SessionStore) Create(identity *Identity) string {
	token := newToken()
	s.cache.Set(token, identity, ttlcache.DefaultTTL)
	return token
}

func (s *SessionStore) Get(token string) (*Identity, bool) {
	item := s.cache.Get(token)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (s *SessionStore) Destroy(token string) {
	s.cache.Delete(token)
}

func newToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
