package services

import (
	"errors"
	"time"

	"mutual-aid/internal/domain/user"
	aid_errors "mutual-aid/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionService issues the token a client keeps as its session record.
// Possession of the contact identifier is the only proof behind it.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SessionService) Issue(u user.User) (Session, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := SessionClaims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Parse validates token and returns the user ID it was issued to.
func (s *SessionService) Parse(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, aid_errors.ErrUnauthorized
	}
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return uuid.Nil, errors.Join(aid_errors.ErrUnauthorized, err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, aid_errors.ErrUnauthorized
	}
	return id, nil
}
