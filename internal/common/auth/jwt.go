// Package auth issues and verifies the bearer tokens carried by chat API requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims carries the authenticated agent. The agentId claim name matches
// tokens minted by earlier deployments.
type Claims struct {
	jwt.RegisteredClaims
	AgentID int64  `json:"agentId"`
	Email   string `json:"email,omitempty"`
}

type JWTManager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

func NewJWTManager(secret, issuer string, expiration time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: empty signing secret")
	}
	return &JWTManager{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

func (m *JWTManager) IssueToken(agentID int64, email string) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.expiration)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", agentID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.New().String(),
		},
		AgentID: agentID,
		Email:   email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, exp, nil
}

// ValidateToken returns ErrTokenExpired or ErrTokenInvalid (wrapped) on failure.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: %w", ErrTokenExpired)
		}
		return nil, fmt.Errorf("auth: %w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: %w: bad claims", ErrTokenInvalid)
	}
	if m.issuer != "" && claims.Issuer != "" && claims.Issuer != m.issuer {
		return nil, fmt.Errorf("auth: %w: issuer %q", ErrTokenInvalid, claims.Issuer)
	}
	if claims.AgentID <= 0 {
		return nil, fmt.Errorf("auth: %w: missing agentId", ErrTokenInvalid)
	}
	return claims, nil
}
