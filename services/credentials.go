package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
)

// TokenName es el nombre con el que se guardan los tokens emitidos por la API
const TokenName = "API TOKEN"

// ErrUnauthenticated indica un token ausente, inválido, vencido o revocado
var ErrUnauthenticated = errors.New("unauthenticated")

// CredentialService emite y verifica tokens bearer. Cada token es un JWT
// firmado cuyo jti debe seguir existiendo en personal_access_tokens, así que
// borrar la fila revoca el token aunque la firma siga siendo válida.
type CredentialService struct {
	tokens repository.TokenRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCredentialService crea el servicio. Con ttl cero los tokens no vencen.
func NewCredentialService(tokens repository.TokenRepository, secret string, ttl time.Duration) *CredentialService {
	return &CredentialService{
		tokens: tokens,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue genera un token nuevo para el usuario y lo guarda. Los tokens
// anteriores del usuario siguen vigentes.
func (s *CredentialService) Issue(ctx context.Context, userID int64) (string, error) {
	now := s.now()
	jti := uuid.NewString()

	claims := jwt.RegisteredClaims{
		ID:       jti,
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	record := &models.AccessToken{UserID: userID, Name: TokenName, TokenID: jti}
	if s.ttl > 0 {
		expiresAt := now.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
		record.ExpiresAt = &expiresAt
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return signed, nil
}

// Verify resuelve el usuario dueño del token o devuelve ErrUnauthenticated
func (s *CredentialService) Verify(ctx context.Context, token string) (models.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Identity{}, ErrUnauthenticated
	}

	record, err := s.tokens.GetByTokenID(ctx, claims.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("lookup token: %w", err)
	}
	if record.UserID != userID {
		return models.Identity{}, ErrUnauthenticated
	}
	if record.ExpiresAt != nil && !s.now().Before(*record.ExpiresAt) {
		return models.Identity{}, ErrUnauthenticated
	}

	if err := s.tokens.Touch(ctx, record.ID); err != nil {
		return models.Identity{}, fmt.Errorf("touch token: %w", err)
	}
	return models.Identity{UserID: userID, TokenID: claims.ID}, nil
}

// RevokeAll borra todos los tokens del usuario
func (s *CredentialService) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	n, err := s.tokens.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke tokens: %w", err)
	}
	return n, nil
}
