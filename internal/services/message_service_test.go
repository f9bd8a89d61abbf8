package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubChecker struct {
	connected bool
	err       error
}

func (s *stubChecker) Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	return s.connected, s.err
}

func TestConversationKey_OrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	if ConversationKey(a, b) != ConversationKey(b, a) {
		t.Fatal("conversation key must not depend on argument order")
	}
	if !strings.Contains(ConversationKey(a, b), "_") {
		t.Fatal("expected underscore-joined key")
	}
}

func TestMessageService_Send_EmptyBody(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: true})
	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "   ")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestMessageService_Send_Self(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: true})
	me := uuid.New()
	_, err := svc.Send(context.Background(), me, me, "hi")
	if !errors.Is(err, ErrMessageSelf) {
		t.Fatalf("expected ErrMessageSelf, got %v", err)
	}
}

func TestMessageService_Send_NotConnected(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: false})
	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "hi")
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestMessageService_Send_TooLong(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: true})
	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), strings.Repeat("a", maxMessageLength+1))
	if !errors.Is(err, ErrMessageTooBig) {
		t.Fatalf("expected ErrMessageTooBig, got %v", err)
	}
}

func TestMessageService_Send_Success(t *testing.T) {
	sender := uuid.New()
	recipient := uuid.New()
	msgID := uuid.New()
	var gotKey string

	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotKey = args[0].(string)
			return rowFromValues(msgID, args[0], sender, args[2], time.Now())
		},
	}

	svc := NewMessageService(db, &stubChecker{connected: true})
	msg, err := svc.Send(context.Background(), sender, recipient, "  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "hello" {
		t.Fatalf("expected trimmed body, got %q", msg.Body)
	}
	if gotKey != ConversationKey(sender, recipient) {
		t.Fatalf("unexpected conversation key %q", gotKey)
	}
}

func TestMessageService_ListConversation_NotConnected(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: false})
	_, err := svc.ListConversation(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestMessageService_ListConversation_Empty(t *testing.T) {
	svc := NewMessageService(&fakeDB{}, &stubChecker{connected: true})
	messages, err := svc.ListConversation(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
