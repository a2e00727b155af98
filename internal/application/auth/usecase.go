// Package auth implementa autenticación y gestión de usuarios sobre el
// documento único, con hash bcrypt y tokens JWT.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/patrimonio-api/pkg/config"
	"github.com/jhoicas/patrimonio-api/pkg/jwt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	store  repository.DocumentStore
	jwtCfg config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.DocumentStore, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{store: store, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite un token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.FindUser(in.Username)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{Username: user.Username, Role: user.Role},
	}, nil
}

// Register da de alta un usuario (operación de admin).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	err = uc.store.Run(ctx, func(doc *entity.Document) error {
		if doc.FindUser(username) != nil {
			return domain.ErrUserAlreadyExists
		}
		doc.Users = append(doc.Users, entity.User{
			Username:     username,
			Role:         role,
			PasswordHash: string(hash),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{Username: username, Role: role}, nil
}

// ListUsers devuelve los usuarios sin el hash.
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(doc.Users))
	for _, u := range doc.Users {
		out = append(out, dto.UserResponse{Username: u.Username, Role: u.Role})
	}
	return out, nil
}
