package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
	"github.com/ayursutra/clinic-api/pkg/auth"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

const bcryptCost = 12

// Service issues credentials and resolves tokens back into actors. The
// booking engine itself never sees passwords or tokens, only the resolved
// model.Actor.
type Service struct {
	users  repository.UserRepository
	jwtSvc auth.JWTService
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService) *Service {
	return &Service{users: users, jwtSvc: jwtSvc}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	role := model.RolePatient
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, apperrors.Validation("role must be one of patient, practitioner, admin")
		}
		role = parsed
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		IsActive: true,
	}

	if req.PractitionerID != "" {
		if role != model.RolePatient {
			return nil, apperrors.Validation("only patients can carry a practitioner assignment")
		}
		practitionerID, err := uuid.Parse(req.PractitionerID)
		if err != nil {
			return nil, apperrors.Validation("practitionerId must be a valid id")
		}
		practitioner, err := s.users.Get(ctx, practitionerID)
		if err != nil || practitioner.Role != model.RolePractitioner {
			return nil, apperrors.NotFound("practitioner")
		}
		user.PractitionerID = &practitionerID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Validation("email is already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokenFor(user)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.tokenFor(user)
}

// ResolveActor turns a bearer token into the caller identity the services
// consume. Used by the auth middleware on every request.
func (s *Service) ResolveActor(ctx context.Context, token string) (model.Actor, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return model.Actor{}, apperrors.Unauthorized("invalid token")
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return model.Actor{}, apperrors.Unauthorized("invalid token")
	}
	if !user.IsActive {
		return model.Actor{}, apperrors.Unauthorized("account disabled")
	}
	return user.Actor(), nil
}

func (s *Service) tokenFor(user *model.User) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{Token: token, User: user.Public()}, nil
}
