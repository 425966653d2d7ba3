package nats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/models"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/users"
)

// Wire DTOs. Field names follow the JSON convention shared with the other
// services in the deployment.

type registerRequest struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Password    string   `json:"password"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type authReply struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// errorReply is the failure envelope: an HTTP-ish status code plus a
// human-readable message, never internal detail.
type errorReply struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) register(ctx context.Context, data []byte) any {
	req := &registerRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return classify(common.ErrValidation)
	}

	result, err := s.auth.Register(ctx, &users.RegisterRequest{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		IsActive:    req.IsActive,
		Roles:       req.Roles,
	})
	if err != nil {
		s.logger.Warn(ctx, "Registration failed", "error", err.Error())
		return classify(err)
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	return &authReply{User: result.User, Token: result.Token}
}

func (s *Server) login(ctx context.Context, data []byte) any {
	req := &loginRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return classify(common.ErrValidation)
	}

	result, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return classify(err)
	}

	return &authReply{User: result.User, Token: result.Token}
}

func (s *Server) logout(ctx context.Context, data []byte) any {
	return s.auth.Logout(ctx)
}

func (s *Server) verify(ctx context.Context, data []byte) any {
	req := &verifyRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return classify(common.ErrInvalidToken)
	}

	result, err := s.auth.VerifyAndRenew(ctx, req.Token)
	if err != nil {
		return classify(err)
	}

	return &authReply{User: result.User, Token: result.Token}
}

// classify maps service errors to the wire envelope. Anything unclassified
// becomes a generic 500.
func classify(err error) *errorReply {
	switch {
	case errors.Is(err, common.ErrValidation):
		return &errorReply{Status: http.StatusBadRequest, Message: "invalid request"}
	case errors.Is(err, common.ErrDuplicateUser):
		return &errorReply{Status: http.StatusBadRequest, Message: common.ErrDuplicateUser.Error()}
	case errors.Is(err, common.ErrInvalidCredentials):
		return &errorReply{Status: http.StatusUnauthorized, Message: common.ErrInvalidCredentials.Error()}
	case errors.Is(err, common.ErrInvalidToken):
		return &errorReply{Status: http.StatusUnauthorized, Message: common.ErrInvalidToken.Error()}
	default:
		return &errorReply{Status: http.StatusInternalServerError, Message: "internal error"}
	}
}
