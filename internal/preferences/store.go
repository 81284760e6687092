// Package preferences persists the device-local session flags: whether a
// client is logged in and who it is.
package preferences

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"vethome/internal/logger"
	"vethome/internal/state"
)

const Namespace = "vet_home_prefs"

const (
	KeyIsLoggedIn = "is_logged_in"
	KeyUserEmail  = "user_email"
	KeyUserName   = "user_name"
	KeyUserID     = "user_id"
)

var allKeys = []string{KeyIsLoggedIn, KeyUserEmail, KeyUserName, KeyUserID}

// Snapshot is the persisted session identity.
type Snapshot struct {
	LoggedIn bool   `json:"isLoggedIn"`
	Email    string `json:"userEmail"`
	Name     string `json:"userName"`
	UserID   string `json:"userId"`
}

// Store reads and writes the session keys through a Backend.
type Store struct {
	backend Backend
	current *state.Holder[Snapshot]
	log     *logrus.Entry
}

// NewStore creates a Store. Subscribers see the zero Snapshot until the
// first write or Refresh.
func NewStore(backend Backend, log *logger.Logger) *Store {
	return &Store{
		backend: backend,
		current: state.NewHolder(Snapshot{}),
		log:     log.Component("preferences"),
	}
}

func (s *Store) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	if err := s.backend.Set(ctx, map[string]string{KeyIsLoggedIn: strconv.FormatBool(loggedIn)}); err != nil {
		return fmt.Errorf("failed to store login flag: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// SetUserInfo stores the identity of the logged-in client.
func (s *Store) SetUserInfo(ctx context.Context, email, name, id string) error {
	err := s.backend.Set(ctx, map[string]string{
		KeyUserEmail: email,
		KeyUserName:  name,
		KeyUserID:    id,
	})
	if err != nil {
		return fmt.Errorf("failed to store user info: %w", err)
	}
	s.refresh(ctx)
	return nil
}

// ClearUserData removes every session key.
func (s *Store) ClearUserData(ctx context.Context) error {
	if err := s.backend.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("failed to clear user data: %w", err)
	}
	s.refresh(ctx)
	return nil
}

func (s *Store) IsLoggedIn(ctx context.Context) (bool, error) {
	v, err := s.get(ctx, KeyIsLoggedIn)
	if err != nil {
		return false, err
	}
	loggedIn, _ := strconv.ParseBool(v)
	return loggedIn, nil
}

func (s *Store) UserEmail(ctx context.Context) (string, error) { return s.get(ctx, KeyUserEmail) }

func (s *Store) UserName(ctx context.Context) (string, error) { return s.get(ctx, KeyUserName) }

func (s *Store) UserID(ctx context.Context) (string, error) { return s.get(ctx, KeyUserID) }

// Snapshot reads all four keys.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.LoggedIn, err = s.IsLoggedIn(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Email, err = s.UserEmail(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Name, err = s.UserName(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.UserID, err = s.UserID(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Subscribe observes the persisted snapshot.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	return s.current.Subscribe()
}

// Refresh reloads the observed snapshot from the backend.
func (s *Store) Refresh(ctx context.Context) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.current.Set(snap)
	return nil
}

func (s *Store) refresh(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.WithError(err).Warn("failed to refresh preference snapshot")
	}
}

// get returns "" for a missing key.
func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, _, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return v, nil
}
