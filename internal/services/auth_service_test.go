package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skilllink/skilllink/internal/models"
)

func TestAuthService_PasswordRoundTrip(t *testing.T) {
	svc := NewAuthService(&fakeDB{}, newFakeRedis())

	hash, err := svc.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.VerifyPassword(hash, "correct horse battery staple") {
		t.Fatal("expected password to verify")
	}
	if svc.VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestAuthService_GenerateSessionToken(t *testing.T) {
	svc := NewAuthService(&fakeDB{}, newFakeRedis())

	token, hash, err := svc.GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := sha256.Sum256([]byte(token))
	if hash != hex.EncodeToString(sum[:]) {
		t.Fatal("hash is not the sha256 of the token")
	}
}

func TestAuthService_CreateSession_StoresInRedis(t *testing.T) {
	redis := newFakeRedis()
	svc := NewAuthService(&fakeDB{}, redis)
	userID := uuid.New()

	token, err := svc.CreateSession(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	found := false
	for key, val := range redis.values {
		if strings.HasPrefix(key, sessionKeyPrefix) && val == userID.String() {
			found = true
		}
	}
	if !found {
		t.Fatal("session not stored in redis")
	}
}

func TestAuthService_CreateSession_FallsBackToPostgres(t *testing.T) {
	redis := newFakeRedis()
	redis.setErr = errors.New("redis down")

	execs := 0
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			execs++
			if !strings.Contains(sql, "INSERT INTO sessions") {
				t.Fatalf("unexpected exec: %s", sql)
			}
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}

	svc := NewAuthService(db, redis)
	if _, err := svc.CreateSession(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if execs != 1 {
		t.Fatalf("expected postgres fallback insert, got %d execs", execs)
	}
}

func TestAuthService_ValidateSession_RedisHit(t *testing.T) {
	redis := newFakeRedis()
	userID := uuid.New()

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(userRowValues(userID, "a@b.c", "Ada", models.UserRoleStudent, "maths")...)
		},
	}

	svc := NewAuthService(db, redis)
	token, _, err := svc.GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redis.values[sessionKeyPrefix+svc.hashToken(token)] = userID.String()

	user, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("expected user %v, got %v", userID, user.ID)
	}
}

func TestAuthService_ValidateSession_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return errorRow(pgx.ErrNoRows)
		},
	}

	svc := NewAuthService(db, newFakeRedis())
	_, err := svc.ValidateSession(context.Background(), "bogus")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	userID := uuid.New()
	deleted := false
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(uuid.New(), userID, "hash", time.Now().Add(-time.Hour), time.Now().Add(-2*time.Hour))
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (CommandTag, error) {
			deleted = true
			return fakeCommandTag{rowsAffected: 1}, nil
		},
	}

	svc := NewAuthService(db, newFakeRedis())
	_, err := svc.ValidateSession(context.Background(), "expired")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Fatal("expected expired session to be cleaned up")
	}
}

func TestAuthService_DeleteSession(t *testing.T) {
	redis := newFakeRedis()
	svc := NewAuthService(&fakeDB{}, redis)

	token, hash, err := svc.GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redis.values[sessionKeyPrefix+hash] = uuid.New().String()

	if err := svc.DeleteSession(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := redis.values[sessionKeyPrefix+hash]; ok {
		t.Fatal("session still present in redis")
	}
}
