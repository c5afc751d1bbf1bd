package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/isdelr/lexilearn-be/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password string) (string, error)
	VerifyCredentials(ctx context.Context, username, password string) (string, bool)
	GetProfile(ctx context.Context, identityID string) (models.Profile, error)
	UpdatePreferences(ctx context.Context, identityID string, patch models.PreferencesPatch) (models.Profile, error)
}

// UserService provides business logic for learner accounts.
type UserService struct {
	store store.IdentityStore
	cost  int
}

// NewUserService creates a new UserService.
func NewUserService(s store.IdentityStore) *UserService {
	return &UserService{store: s, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Lower costs are only meant for tests.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register creates a new identity, hashing the password, and returns its id.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password required: %w", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password too long: %w", ErrInvalidInput)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	identity := models.Identity{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
		Preferences:  models.DefaultPreferences(),
	}
	if err := s.store.CreateIdentity(ctx, identity); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("failed to store identity: %w", err)
	}

	log.Info().Str("user_id", identity.ID).Str("username", username).Msg("Registered user")
	return identity.ID, nil
}

// VerifyCredentials returns the identity id when the password matches. Unknown
// users and wrong passwords both return false.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (string, bool) {
	identity, err := s.store.GetIdentityByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("username", username).Msg("Failed to look up user")
		}
		return "", false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", false
	}
	return identity.ID, true
}

// GetProfile returns the identity without its password hash.
func (s *UserService) GetProfile(ctx context.Context, identityID string) (models.Profile, error) {
	identity, err := s.store.GetIdentityByID(ctx, identityID)
	if err != nil {
		return models.Profile{}, translateStoreErr(err)
	}
	return identity.Profile(), nil
}

// UpdatePreferences applies only the supplied fields. An unknown difficulty
// level is dropped from the patch rather than rejected.
func (s *UserService) UpdatePreferences(ctx context.Context, identityID string, patch models.PreferencesPatch) (models.Profile, error) {
	if patch.DifficultyLevel != nil && !models.ValidDifficulty(*patch.DifficultyLevel) {
		log.Debug().Str("user_id", identityID).Str("difficulty_level", *patch.DifficultyLevel).Msg("Ignoring unknown difficulty level")
		patch.DifficultyLevel = nil
	}

	identity, err := s.store.UpdatePreferences(ctx, identityID, patch)
	if err != nil {
		return models.Profile{}, translateStoreErr(err)
	}
	return identity.Profile(), nil
}

// Preferences returns the identity's preferences, or the defaults when the
// identity cannot be found.
func (s *UserService) Preferences(ctx context.Context, identityID string) models.Preferences {
	identity, err := s.store.GetIdentityByID(ctx, identityID)
	if err != nil {
		return models.DefaultPreferences()
	}
	return identity.Preferences
}

func translateStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
