package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/internal/security"
	"github.com/sparkdate/spark-server/pkg/errors"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// AuthService handles registration, login, and refresh token rotation.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *repositories.RefreshTokenRepository
	cfg    *config.Config
}

func NewAuthService(users *repositories.UserRepository, tokens *repositories.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
	}
}

// TokenPair is what clients hold after authenticating.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Email        string
	Password     string
	DisplayName  string
	BirthDate    time.Time
	Gender       string
	Bio          string
	SearchGender string
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(input RegisterInput) (*models.User, *TokenPair, error) {
	if len(input.Password) < 8 {
		return nil, nil, errors.New(errors.ErrCodeValidation, "password must be at least 8 characters")
	}

	now := time.Now().UTC()
	if age := ageAt(input.BirthDate, now); age < 18 {
		return nil, nil, errors.New(errors.ErrCodeValidation, "must be at least 18 years old")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	searchGender := input.SearchGender
	if searchGender == "" {
		searchGender = models.SearchGenderAny
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		DisplayName:  security.SanitizeString(security.SanitizeHTML(input.DisplayName)),
		BirthDate:    input.BirthDate,
		Gender:       input.Gender,
		Bio:          security.SanitizeString(security.SanitizeHTML(input.Bio)),
		SearchGender: searchGender,
		AgeMin:       18,
		AgeMax:       100,
	}

	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}

	logger.Info("User registered", "user_id", user.ID)

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies credentials and issues a token pair. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, nil, errors.New(errors.ErrCodeUnauthorized, "invalid credentials")
		}
		return nil, nil, err
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, nil, errors.New(errors.ErrCodeUnauthorized, "invalid credentials")
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Expired or revoked tokens are rejected.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.GetByHash(security.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeUnauthorized, "invalid refresh token")
		}
		return nil, err
	}

	if !stored.Active(time.Now().UTC()) {
		return nil, errors.New(errors.ErrCodeUnauthorized, "refresh token expired or revoked")
	}

	if err := s.tokens.Revoke(stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(stored.UserID)
}

// Logout revokes the presented refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(refreshToken string) error {
	stored, err := s.tokens.GetByHash(security.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil
		}
		return err
	}

	return s.tokens.Revoke(stored.ID)
}

// LogoutAll revokes every live refresh token of the user, signing out all
// devices at once.
func (s *AuthService) LogoutAll(userID uuid.UUID) error {
	if err := s.tokens.RevokeAllForUser(userID); err != nil {
		return err
	}
	logger.Info("All sessions revoked", "user_id", userID)
	return nil
}

// PurgeExpiredTokens removes refresh tokens past their expiry. Run it
// periodically from the server entrypoint.
func (s *AuthService) PurgeExpiredTokens() error {
	return s.tokens.DeleteExpired()
}

func (s *AuthService) issueTokens(userID uuid.UUID) (*TokenPair, error) {
	access, err := security.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sign access token")
	}

	refresh, hash, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate refresh token")
	}

	record := &models.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(s.cfg.GetRefreshTokenTTL()),
	}
	if err := s.tokens.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if birthDate.AddDate(age, 0, 0).After(now) {
		age--
	}
	return age
}
