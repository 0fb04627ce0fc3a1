package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
)

// AuthService registra usuarios, inicia y cierra sesiones
type AuthService struct {
	usuarios    repository.UsuarioRepository
	credentials *CredentialService
}

func NewAuthService(usuarios repository.UsuarioRepository, credentials *CredentialService) *AuthService {
	return &AuthService{usuarios: usuarios, credentials: credentials}
}

// Register crea el usuario con la contraseña cifrada y le emite un token.
// Si el email ya existe devuelve repository.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Usuario, string, error) {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}
	u := &models.Usuario{Name: req.Name, Email: req.Email, Password: hashed}
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.credentials.Issue(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifica email y contraseña. Un email desconocido y una contraseña
// incorrecta devuelven el mismo ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Usuario, string, error) {
	u, err := s.usuarios.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if err := CheckPassword(u.Password, req.Password); err != nil {
		return nil, "", err
	}
	token, err := s.credentials.Issue(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout revoca todos los tokens del usuario autenticado
func (s *AuthService) Logout(ctx context.Context, caller models.Identity) error {
	_, err := s.credentials.RevokeAll(ctx, caller.UserID)
	return err
}

// EmailTaken respalda la regla unique del registro
func (s *AuthService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.usuarios.EmailExists(ctx, email)
}
