// Package users contains the credential lifecycle logic: registration,
// login, logout and token renewal, plus the credential store behind them.
package users

import (
	"context"
	"errors"
	"net/mail"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/auth"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/models"
)

// RegisterRequest carries the fields accepted by Register. IsActive and
// Roles are optional; a nil IsActive defaults to an active account.
type RegisterRequest struct {
	Email       string
	DisplayName string
	Password    string
	IsActive    *bool
	Roles       []string
}

// AuthResult is the success payload shared by Register, Login and
// VerifyAndRenew: the public user view plus a freshly signed token.
type AuthResult struct {
	User  *models.PublicUser
	Token string
}

// Service orchestrates the credential lifecycle. It owns all business-rule
// branching and error classification and holds no state of its own beyond
// the injected collaborators.
type Service struct {
	repo   Repository
	hasher *auth.Hasher
	codec  *auth.TokenCodec
}

func NewService(repo Repository, hasher *auth.Hasher, codec *auth.TokenCodec) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec}
}

// Register creates a new account and signs a first token for it. A taken
// email yields common.ErrDuplicateUser whether it is caught by the pre-check
// or by the store's unique constraint during the insert.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrDuplicateUser
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, common.ErrInternal
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		IsActive:     active,
		Roles:        req.Roles,
	}

	// The pre-check above races against concurrent registrations; the
	// store's unique constraint is the authoritative guard.
	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return nil, common.ErrDuplicateUser
		}
		return nil, common.ErrInternal
	}

	token, err := s.codec.Sign(user.ID)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies the password for email and signs a fresh token. Unknown
// email, inactive account and wrong password all yield the same
// common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.codec.Sign(user.ID)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Logout is advisory: no server-side session exists, so there is nothing to
// revoke. Clients discard their token on receipt of the acknowledgement.
func (s *Service) Logout(ctx context.Context) string {
	return "logged out"
}

// VerifyAndRenew validates token, re-fetches the subject and mints a
// replacement with a fresh validity window (sliding renewal). Every failure
// past the signature check also resolves to common.ErrInvalidToken: a token
// whose subject cannot be loaded is no more usable than a tampered one.
func (s *Service) VerifyAndRenew(ctx context.Context, token string) (*AuthResult, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	renewed, err := s.codec.Sign(user.ID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &AuthResult{User: user.Public(), Token: renewed}, nil
}

func validateRegister(req *RegisterRequest) error {
	if req.Email == "" || req.DisplayName == "" || req.Password == "" {
		return common.ErrValidation
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return common.ErrValidation
	}
	return nil
}
