package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meridian/contexts/identity-access/session-gateway/domain/entities"
	domainerrors "meridian/contexts/identity-access/session-gateway/domain/errors"
	"meridian/contexts/identity-access/session-gateway/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// CredentialStore keeps session records in Redis with a sliding TTL and hands
// the client a compact signed token whose jti points at the record. The Redis
// record is authoritative: revoking it invalidates the token immediately no
// matter what the token itself says.
type CredentialStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

type sessionRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func NewCredentialStore(client *redis.Client, secret []byte, ttl time.Duration, logger *slog.Logger) *CredentialStore {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CredentialStore{
		client: client,
		secret: secret,
		ttl:    ttl,
		logger: logger,
	}
}

// Refresh validates the presented token, slides the backing record's TTL,
// and re-signs the token with a fresh issue time. Absent or tampered tokens
// return ErrNoSession; Redis failures wrap ErrCredentialBackend so the guard
// can fail closed.
func (s *CredentialStore) Refresh(ctx context.Context, token string) (entities.Session, ports.RefreshedCredential, error) {
	var none ports.RefreshedCredential

	claims, err := s.parse(token)
	if err != nil {
		return entities.Session{}, none, err
	}

	key := sessionKeyPrefix + claims.ID
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return entities.Session{}, none, domainerrors.ErrNoSession
	}
	if err != nil {
		return entities.Session{}, none, fmt.Errorf("%w: get session: %v", domainerrors.ErrCredentialBackend, err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("dropping corrupt session record",
			"event", "credential_record_corrupt",
			"module", "identity-access/session-gateway",
			"layer", "adapter",
			"session_id", claims.ID,
		)
		_ = s.client.Del(ctx, key).Err()
		return entities.Session{}, none, domainerrors.ErrNoSession
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return entities.Session{}, none, fmt.Errorf("%w: slide session ttl: %v", domainerrors.ErrCredentialBackend, err)
	}

	refreshed, err := s.sign(claims.ID, record)
	if err != nil {
		return entities.Session{}, none, fmt.Errorf("%w: sign refreshed token: %v", domainerrors.ErrCredentialBackend, err)
	}

	return entities.Session{UserID: record.UserID, Email: record.Email}, refreshed, nil
}

// Issue creates a new session record and returns the cookie material for it.
func (s *CredentialStore) Issue(ctx context.Context, userID string, email string) (ports.RefreshedCredential, error) {
	var none ports.RefreshedCredential
	if userID == "" {
		return none, domainerrors.ErrNoSession
	}

	record := sessionRecord{UserID: userID, Email: email}
	payload, err := json.Marshal(record)
	if err != nil {
		return none, fmt.Errorf("%w: encode session: %v", domainerrors.ErrCredentialBackend, err)
	}

	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return none, fmt.Errorf("%w: store session: %v", domainerrors.ErrCredentialBackend, err)
	}

	credential, err := s.sign(sessionID, record)
	if err != nil {
		return none, fmt.Errorf("%w: sign session token: %v", domainerrors.ErrCredentialBackend, err)
	}
	return credential, nil
}

// Revoke deletes the backing record. Unparseable tokens are a no-op so
// logout stays idempotent.
func (s *CredentialStore) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.client.Del(ctx, sessionKeyPrefix+claims.ID).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", domainerrors.ErrCredentialBackend, err)
	}
	return nil
}

func (s *CredentialStore) parse(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, domainerrors.ErrNoSession
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, domainerrors.ErrNoSession
	}
	return claims, nil
}

func (s *CredentialStore) sign(sessionID string, record sessionRecord) (ports.RefreshedCredential, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		Email: record.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   record.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return ports.RefreshedCredential{}, err
	}
	return ports.RefreshedCredential{Token: signed, MaxAge: s.ttl}, nil
}
