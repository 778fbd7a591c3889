package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/infrastructure/config"
)

// TokenType distinguishes session tokens from refresh tokens
type TokenType string

const (
	TokenTypeSession TokenType = "session"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// SessionClaims is the payload of the session cookie
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	CompanyID string    `json:"companyId"`
	TokenType TokenType `json:"tokenType"`
}

// RefreshClaims is the payload of the refresh cookie
type RefreshClaims struct {
	jwt.RegisteredClaims
	RefreshID string    `json:"refreshId"`
	TokenType TokenType `json:"tokenType"`
}

// SignedToken is a token string with its expiry
type SignedToken struct {
	Value     string
	ExpiresAt time.Time
}

// JWTService signs and verifies session and refresh tokens
type JWTService struct {
	secret            []byte
	issuer            string
	sessionExpiration time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:            []byte(cfg.Secret),
		issuer:            cfg.Issuer,
		sessionExpiration: cfg.SessionExpiration,
		refreshExpiration: cfg.RefreshExpiration,
		now:               time.Now,
	}
}

func (s *JWTService) registered(ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := s.now()
	expiresAt := now.Add(ttl)
	return jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    s.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}, expiresAt
}

// SignSession signs a session token carrying the role claims
func (s *JWTService) SignSession(sessionID, role string, companyID uuid.UUID) (SignedToken, error) {
	registered, expiresAt := s.registered(s.sessionExpiration)
	claims := &SessionClaims{
		RegisteredClaims: registered,
		SessionID:        sessionID,
		Role:             role,
		CompanyID:        companyID.String(),
		TokenType:        TokenTypeSession,
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Value: value, ExpiresAt: expiresAt}, nil
}

// SignRefresh signs a refresh token carrying only the refresh id
func (s *JWTService) SignRefresh(refreshID string) (SignedToken, error) {
	registered, expiresAt := s.registered(s.refreshExpiration)
	claims := &RefreshClaims{
		RegisteredClaims: registered,
		RefreshID:        refreshID,
		TokenType:        TokenTypeRefresh,
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Value: value, ExpiresAt: expiresAt}, nil
}

// ParseSession verifies a session token and returns its claims
func (s *JWTService) ParseSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeSession {
		return nil, ErrInvalidTokenType
	}
	if claims.SessionID == "" || claims.Role == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token and returns its claims
func (s *JWTService) ParseRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidTokenType
	}
	if claims.RefreshID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidClaims
	}
	return nil
}
