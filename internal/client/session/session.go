// Package session keeps the signed-in user of a client and persists it in
// local storage under the auth_token and user keys.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/client/api"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// Authenticator is the subset of the auth service the session needs
type Authenticator interface {
	Register(ctx context.Context, in api.RegisterRequest) (api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Verify(ctx context.Context, token string) (api.TokenClaims, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (entities.UserProfile, error)
	UpdateProfile(ctx context.Context, token, name string, details *entities.BusinessDetails) (entities.UserProfile, error)
	ChangePassword(ctx context.Context, token, current, next string) error
}

// Prober reports and records auth service availability
type Prober interface {
	Check(ctx context.Context) bool
	MarkUnavailable()
}

// Store persists values by key
type Store interface {
	Load(key string, v interface{}) (bool, error)
	Save(key string, v interface{}) error
	Delete(key string) error
}

// Session is a signed-in user
type Session struct {
	Token string
	User  entities.UserProfile
}

// Manager signs users in and out
type Manager struct {
	auth  Authenticator
	probe Prober
	store Store

	mu      sync.RWMutex
	current *Session
}

// NewManager creates a session manager
func NewManager(auth Authenticator, probe Prober, store Store) *Manager {
	return &Manager{auth: auth, probe: probe, store: store}
}

// Current returns the signed-in session
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Login signs in. It fails with SERVICE_UNAVAILABLE without contacting the
// service when the probe reports it down.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if err := m.available(ctx); err != nil {
		return Session{}, err
	}
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return Session{}, m.remoteError(err)
	}
	return m.start(resp)
}

// Register creates an account and signs it in
func (m *Manager) Register(ctx context.Context, in api.RegisterRequest) (Session, error) {
	if err := m.available(ctx); err != nil {
		return Session{}, err
	}
	resp, err := m.auth.Register(ctx, in)
	if err != nil {
		return Session{}, m.remoteError(err)
	}
	return m.start(resp)
}

// ChangePassword replaces the password of the signed-in user
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	sess, ok := m.Current()
	if !ok {
		return apperrors.NewUnauthorizedError("not signed in")
	}
	if err := m.available(ctx); err != nil {
		return err
	}
	if err := m.auth.ChangePassword(ctx, sess.Token, current, next); err != nil {
		return m.remoteError(err)
	}
	return nil
}

// UpdateProfile changes the name and business details and stores the
// returned profile locally.
func (m *Manager) UpdateProfile(ctx context.Context, name string, details *entities.BusinessDetails) (entities.UserProfile, error) {
	sess, ok := m.Current()
	if !ok {
		return entities.UserProfile{}, apperrors.NewUnauthorizedError("not signed in")
	}
	if err := m.available(ctx); err != nil {
		return entities.UserProfile{}, err
	}
	profile, err := m.auth.UpdateProfile(ctx, sess.Token, name, details)
	if err != nil {
		return entities.UserProfile{}, m.remoteError(err)
	}
	if _, err := m.start(api.AuthResponse{User: profile, Token: sess.Token}); err != nil {
		return profile, err
	}
	return profile, nil
}

// Restore loads the stored session and checks the token with the service.
// A rejected token clears the session. When the service cannot be reached
// the stored session is kept.
func (m *Manager) Restore(ctx context.Context) (Session, bool, error) {
	var token string
	found, err := m.store.Load(TokenKey, &token)
	if err != nil {
		return Session{}, false, err
	}
	var user entities.UserProfile
	hasUser, err := m.store.Load(UserKey, &user)
	if err != nil {
		return Session{}, false, err
	}
	if !found || token == "" || !hasUser {
		return Session{}, false, nil
	}

	sess := Session{Token: token, User: user}
	m.set(&sess)

	if !m.probe.Check(ctx) {
		return sess, true, nil
	}

	_, err = m.auth.Verify(ctx, token)
	switch {
	case err == nil:
		if profile, err := m.auth.Profile(ctx, token); err == nil {
			return m.startKeep(sess, profile)
		}
		return sess, true, nil
	case apperrors.Is(err, apperrors.ErrorTypeUnauthorized):
		log.Info().Str("user_id", user.ID).Msg("Stored session expired")
		return Session{}, false, m.clear()
	case api.IsUnreachable(err):
		m.probe.MarkUnavailable()
		return sess, true, nil
	default:
		return sess, true, err
	}
}

// Logout revokes the token when the service is reachable and always clears
// the local session.
func (m *Manager) Logout(ctx context.Context) error {
	if sess, ok := m.Current(); ok && m.probe.Check(ctx) {
		if err := m.auth.Logout(ctx, sess.Token); err != nil {
			if api.IsUnreachable(err) {
				m.probe.MarkUnavailable()
			}
			log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("Remote logout failed")
		}
	}
	return m.clear()
}

func (m *Manager) available(ctx context.Context) error {
	if !m.probe.Check(ctx) {
		return apperrors.NewServiceUnavailableError("auth", nil)
	}
	return nil
}

func (m *Manager) remoteError(err error) error {
	if !api.IsUnreachable(err) {
		return err
	}
	m.probe.MarkUnavailable()
	if apperrors.Is(err, apperrors.ErrorTypeServiceUnavailable) {
		return err
	}
	return apperrors.NewServiceUnavailableError("auth", err)
}

func (m *Manager) start(resp api.AuthResponse) (Session, error) {
	sess := Session{Token: resp.Token, User: resp.User}
	if err := m.store.Save(TokenKey, sess.Token); err != nil {
		return Session{}, err
	}
	if err := m.store.Save(UserKey, sess.User); err != nil {
		return Session{}, err
	}
	m.set(&sess)
	return sess, nil
}

func (m *Manager) startKeep(sess Session, profile entities.UserProfile) (Session, bool, error) {
	refreshed, err := m.start(api.AuthResponse{User: profile, Token: sess.Token})
	if err != nil {
		return sess, true, err
	}
	return refreshed, true, nil
}

func (m *Manager) set(sess *Session) {
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
}

func (m *Manager) clear() error {
	m.set(nil)
	if err := m.store.Delete(TokenKey); err != nil {
		return err
	}
	return m.store.Delete(UserKey)
}
