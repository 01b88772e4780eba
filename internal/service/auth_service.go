package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/platform"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type authPlatform interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type authEventPublisher interface {
	Publish(ctx context.Context, event models.AuthEvent) error
}

type authProfileStore interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

// AuthConfig defines configuration for token verification.
type AuthConfig struct {
	JWTSecret string
}

// AuthService delegates credential handling to the hosted auth platform and
// verifies the platform's access tokens locally.
type AuthService struct {
	platform  authPlatform
	profiles  authProfileStore
	events    authEventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance. profiles and events are optional.
func NewAuthService(platform authPlatform, profiles authProfileStore, events authEventPublisher, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		platform:  platform,
		profiles:  profiles,
		events:    events,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Register creates the platform account and seeds a Normal profile for it.
func (s *AuthService) Register(ctx context.Context, req models.SignUpRequest) (*models.AuthUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sign-up payload")
	}
	user, err := s.platform.SignUp(ctx, req)
	if err != nil {
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnprocessableEntity || apiErr.Status == http.StatusBadRequest) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, apiErr.Error())
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "sign-up failed")
	}

	if s.profiles != nil && user != nil && user.ID != "" {
		profile := &models.Profile{
			ID:        user.ID,
			Username:  req.Username,
			Unit:      optionalString(req.Unit),
			Team:      optionalString(req.Team),
			MicroArea: optionalString(req.MicroArea),
			Role:      models.RoleNormal,
		}
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			s.logger.Warn("profile seed failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	s.logger.Info("user registered", zap.String("email", req.Email))
	return user, nil
}

// Login exchanges credentials for a platform session and announces the sign-in.
func (s *AuthService) Login(ctx context.Context, req models.SignInRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	session, err := s.platform.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "sign-in failed")
	}

	resp := &dto.LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
		User:         session.User,
	}
	if session.User != nil {
		if s.profiles != nil {
			if profile, err := s.profiles.FindByID(ctx, session.User.ID); err == nil {
				resp.Profile = profile
			}
		}
		s.publish(ctx, models.AuthEventSignedIn, session.User.ID)
	}
	return resp, nil
}

// Logout revokes the platform session and announces the sign-out. The event
// is published even when the platform call fails so cached state is dropped.
func (s *AuthService) Logout(ctx context.Context, actor *models.JWTClaims, accessToken string) error {
	if actor == nil {
		return appErrors.ErrStaleSession
	}
	err := s.platform.SignOut(ctx, accessToken)
	s.publish(ctx, models.AuthEventSignedOut, actor.UserID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "sign-out failed")
	}
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	claims.UserID = claims.Subject
	claims.Privilege = models.RoleNormal
	return claims, nil
}

// Session describes the verified caller. A nil actor yields nil.
func (s *AuthService) Session(actor *models.JWTClaims) *dto.SessionInfo {
	if actor == nil {
		return nil
	}
	info := &dto.SessionInfo{UserID: actor.UserID, Email: actor.Email, Role: actor.Privilege}
	if actor.ExpiresAt != nil {
		expires := actor.ExpiresAt.Time.UTC()
		info.ExpiresAt = &expires
	}
	return info
}

func (s *AuthService) publish(ctx context.Context, eventType models.AuthEventType, userID string) {
	if s.events == nil {
		return
	}
	event := models.AuthEvent{ID: uuid.NewString(), Type: eventType, UserID: userID, OccurredAt: s.now().UTC()}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("auth event publish failed", zap.String("type", string(eventType)), zap.String("user_id", userID), zap.Error(err))
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
