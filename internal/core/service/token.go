package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenExpiration = time.Hour
	TokenIssuer     = "secondchance"
)

var ErrSigningKeyMissing = errors.New("jwt signing key is not configured")

// TokenService issues and verifies the session credential handed to users.
type TokenService interface {
	Issue(userID string) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenUser is the identity payload carried in every token.
type TokenUser struct {
	ID string `json:"id"`
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret    []byte
	algorithm string
	now       func() time.Time
}

func NewJWTService(secret, algorithm string) *JWTService {
	if algorithm == "" {
		algorithm = "HS256"
	}
	return &JWTService{
		secret:    []byte(secret),
		algorithm: algorithm,
		now:       time.Now,
	}
}

func (s *JWTService) signingMethod() jwt.SigningMethod {
	switch s.algorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// Issue signs a token bound to userID that expires after TokenExpiration.
func (s *JWTService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := s.now()
	claims := TokenClaims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks signature, algorithm and expiry and returns the claims.
func (s *JWTService) Validate(tokenString string) (*TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrSigningKeyMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.signingMethod().Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
