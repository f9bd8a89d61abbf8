package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/handlers"
	"github.com/skilllink/skilllink/internal/models"
)

type stubAuthService struct {
	validateFunc func(ctx context.Context, token string) (*models.User, error)
}

func (s *stubAuthService) HashPassword(password string) (string, error) { return "", nil }
func (s *stubAuthService) VerifyPassword(hash, password string) bool    { return false }
func (s *stubAuthService) GenerateSessionToken() (string, string, error) {
	return "", "", nil
}
func (s *stubAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}
func (s *stubAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	return s.validateFunc(ctx, token)
}
func (s *stubAuthService) DeleteSession(ctx context.Context, token string) error { return nil }
func (s *stubAuthService) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func TestAuthenticate_NoCookie(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{
		validateFunc: func(ctx context.Context, token string) (*models.User, error) {
			t.Fatal("ValidateSession should not be called without a cookie")
			return nil, nil
		},
	})

	var gotUser *models.User
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = handlers.GetUserFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if gotUser != nil {
		t.Fatal("expected no user in context")
	}
}

func TestAuthenticate_ValidSession(t *testing.T) {
	user := &models.User{ID: uuid.New(), DisplayName: "Ada"}
	m := NewAuthMiddleware(&stubAuthService{
		validateFunc: func(ctx context.Context, token string) (*models.User, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return user, nil
		},
	})

	var gotUser *models.User
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = handlers.GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "good-token"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if gotUser == nil || gotUser.ID != user.ID {
		t.Fatalf("expected user in context, got %+v", gotUser)
	}
}

func TestAuthenticate_InvalidSessionContinues(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{
		validateFunc: func(ctx context.Context, token string) (*models.User, error) {
			return nil, errors.New("session not found")
		},
	})

	called := false
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if handlers.GetUserFromContext(r.Context()) != nil {
			t.Fatal("expected no user for invalid session")
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bad-token"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Fatal("expected next handler to run")
	}
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{})

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", rr.Code)
	}

	req := httptest.NewRequest("GET", "/", nil)
	ctx := handlers.SetUserInContext(req.Context(), &models.User{ID: uuid.New()})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req.WithContext(ctx))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with user, got %d", rr.Code)
	}
}
