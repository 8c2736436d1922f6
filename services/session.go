package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/store"
	"github.com/ruth8415/TeamTasks/utils"
)

// Session holds the access token and the signed-in user. When path is set the
// session is persisted there so the CLI stays logged in between runs.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string

	// CurrentUser is nil-valued while nobody is signed in.
	CurrentUser *store.Value[models.User]
}

type sessionFile struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

func NewSession(path string) *Session {
	return &Session{path: path, CurrentUser: store.NewValue[models.User]()}
}

// StaticSession carries a token that is never persisted, used when forwarding
// a caller's credentials.
func StaticSession(token string) *Session {
	s := NewSession("")
	s.token = token
	return s
}

// Load restores a persisted session. A missing file leaves the session empty.
func (s *Session) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}

	s.mu.Lock()
	s.token = f.Token
	s.mu.Unlock()

	if f.User != nil {
		s.CurrentUser.Set(*f.User)
	}
	return nil
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Expired reports whether there is no usable token at now.
func (s *Session) Expired(now time.Time) bool {
	token := s.Token()
	return token == "" || utils.TokenExpired(token, now)
}

// Save stores the token and user from an auth response.
func (s *Session) Save(auth models.AuthResponse) error {
	s.mu.Lock()
	s.token = auth.Token
	s.mu.Unlock()

	s.CurrentUser.Set(auth.User)
	return s.persist(&sessionFile{Token: auth.Token, User: &auth.User})
}

// SetUser refreshes the signed-in user without touching the token.
func (s *Session) SetUser(user models.User) error {
	s.CurrentUser.Set(user)
	return s.persist(&sessionFile{Token: s.Token(), User: &user})
}

func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.CurrentUser.Clear()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Session) persist(f *sessionFile) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("failed to restrict session file: %w", err)
	}
	return nil
}
