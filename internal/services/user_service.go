package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/dtos"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

const minPasswordLength = 8

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = errors.New(constants.MsgInvalidCredentials)
	// ErrEmailTaken is returned when registering an email that already has an account
	ErrEmailTaken = errors.New(constants.MsgEmailTaken)
)

type UserService struct {
	repo       *repositories.UserRepository
	tokens     *auth.TokenService
	bcryptCost int
}

func NewUserService(repo *repositories.UserRepository, tokens *auth.TokenService, bcryptCost int) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a customer account. Admins are promoted out of band.
func (s *UserService) Register(ctx context.Context, req dtos.RegisterUserRequest) (*dtos.UserResponse, error) {
	f := fieldErrors{}
	email := strings.ToLower(requireText(f, "email", req.Email, 254))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			f.add("email", constants.MsgInvalidEmail)
		}
	}
	if len(req.Password) < minPasswordLength {
		f.add("password", fmt.Sprintf(constants.MsgTooShortFormat, minPasswordLength))
	}
	if err := f.err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := gormModels.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logging.Info("User registered", "user_id", user.ID)
	resp := newUserResponse(user)
	return &resp, nil
}

// Authenticate checks credentials and issues an access token
func (s *UserService) Authenticate(ctx context.Context, req dtos.TokenRequest) (*dtos.TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}

	return &dtos.TokenResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// Me returns the account behind a token
func (s *UserService) Me(ctx context.Context, userID uint) (*dtos.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := newUserResponse(*user)
	return &resp, nil
}

// Logout revokes the caller's token until it would have expired
func (s *UserService) Logout(tokenID string, expiresAt time.Time) {
	s.tokens.Revoke(tokenID, expiresAt)
}

func newUserResponse(u gormModels.User) dtos.UserResponse {
	return dtos.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}
