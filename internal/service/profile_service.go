package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type profileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	UpdateRole(ctx context.Context, id string, role models.ProfileRole) error
}

// RoleCodes holds bcrypt hashes of the codes that grant each privilege level.
type RoleCodes struct {
	AdminHash string
	UserHash  string
}

// ProfileService reads profiles and switches privilege levels.
type ProfileService struct {
	repo      profileRepository
	codes     RoleCodes
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(repo profileRepository, codes RoleCodes, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, codes: codes, validator: validate, logger: logger}
}

// Me returns the caller's profile, falling back to one derived from the
// token identity when no profile row exists. Without a session it returns nil.
func (s *ProfileService) Me(ctx context.Context, actor *models.JWTClaims) (*models.Profile, error) {
	if actor == nil {
		return nil, nil
	}
	profile, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fallbackProfile(actor), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	profile.FullName = metadataString(actor.UserMetadata, "full_name")
	profile.AvatarURL = metadataString(actor.UserMetadata, "avatar_url")
	return profile, nil
}

// Privilege resolves the privilege level stored for userID. Unknown users are Normal.
func (s *ProfileService) Privilege(ctx context.Context, userID string) (models.ProfileRole, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleNormal, nil
		}
		return models.RoleNormal, err
	}
	if profile.Role == models.RoleAdmin {
		return models.RoleAdmin, nil
	}
	return models.RoleNormal, nil
}

// ChangeRole switches the caller's privilege level. The administrator code
// grants Administrador and the user code reverts to Normal.
func (s *ProfileService) ChangeRole(ctx context.Context, actor *models.JWTClaims, req dto.ChangeRoleRequest) (*dto.ChangeRoleResponse, error) {
	if actor == nil {
		return nil, appErrors.ErrStaleSession
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role change payload")
	}

	var role models.ProfileRole
	switch {
	case codeMatches(s.codes.AdminHash, req.Code):
		role = models.RoleAdmin
	case codeMatches(s.codes.UserHash, req.Code):
		role = models.RoleNormal
	default:
		s.logger.Warn("role change rejected", zap.String("actor_id", actor.UserID))
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid role code")
	}

	err := s.repo.UpdateRole(ctx, actor.UserID, role)
	if errors.Is(err, sql.ErrNoRows) {
		profile := fallbackProfile(actor)
		profile.Role = role
		err = s.repo.Upsert(ctx, profile)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	s.logger.Info("audit", zap.String("action", "profile.role"), zap.String("actor_id", actor.UserID), zap.String("role", string(role)))
	return &dto.ChangeRoleResponse{Role: role}, nil
}

func codeMatches(hash, code string) bool {
	if hash == "" || code == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

func fallbackProfile(actor *models.JWTClaims) *models.Profile {
	username := metadataString(actor.UserMetadata, "username")
	if username == "" {
		username, _, _ = strings.Cut(actor.Email, "@")
	}
	return &models.Profile{
		ID:        actor.UserID,
		Username:  username,
		Unit:      optionalString(metadataString(actor.UserMetadata, "unidade")),
		Team:      optionalString(metadataString(actor.UserMetadata, "equipe")),
		MicroArea: optionalString(metadataString(actor.UserMetadata, "microarea")),
		Role:      models.RoleNormal,
		FullName:  metadataString(actor.UserMetadata, "full_name"),
		AvatarURL: metadataString(actor.UserMetadata, "avatar_url"),
	}
}

func metadataString(meta map[string]interface{}, key string) string {
	if value, ok := meta[key].(string); ok {
		return value
	}
	return ""
}
