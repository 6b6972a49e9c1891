package api

import "sync"

// Tokens es lo que devuelve POST /auth/refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// Session guarda las credenciales de la sesión actual.
// Se crea una vez al hacer login y se inyecta en el Client.
type Session struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewSession(accessToken, refreshToken string) *Session {
	return &Session{access: accessToken, refresh: refreshToken}
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// Set reemplaza el access token; el refresh token solo si vino uno nuevo.
func (s *Session) Set(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = t.AccessToken
	if t.RefreshToken != "" {
		s.refresh = t.RefreshToken
	}
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
}
