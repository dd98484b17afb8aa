package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/user/imagify/pkg/adapters/logger"
	"github.com/user/imagify/pkg/message"
)

func TestDispatcher_Order(t *testing.T) {
	d := NewDispatcher(logger.NewNoop())

	var calls []string
	d.BeforeSend("first", func(ctx context.Context, s *message.Session) error {
		calls = append(calls, "first")
		return nil
	})
	d.BeforeSend("second", func(ctx context.Context, s *message.Session) error {
		calls = append(calls, "second")
		s.Elements = []*message.Element{message.NewText("replaced")}
		return nil
	})

	s := &message.Session{ID: "1", Content: "original"}
	if err := d.Dispatch(context.Background(), s); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("unexpected call order %v", calls)
	}
	if message.Text(s.Elements) != "replaced" {
		t.Errorf("handler modification lost: %q", message.Text(s.Elements))
	}
}

func TestDispatcher_Dispose(t *testing.T) {
	d := NewDispatcher(logger.NewNoop())

	called := false
	dispose := d.BeforeSend("h", func(ctx context.Context, s *message.Session) error {
		called = true
		return nil
	})
	keep := d.BeforeSend("keep", func(ctx context.Context, s *message.Session) error { return nil })
	defer keep()

	dispose()
	dispose()

	if d.Len() != 1 {
		t.Errorf("expected 1 handler after dispose, got %d", d.Len())
	}
	if err := d.Dispatch(context.Background(), &message.Session{}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if called {
		t.Error("disposed handler was called")
	}
}

func TestDispatcher_ErrorStops(t *testing.T) {
	d := NewDispatcher(logger.NewNoop())
	boom := errors.New("boom")

	d.BeforeSend("failing", func(ctx context.Context, s *message.Session) error { return boom })
	d.BeforeSend("after", func(ctx context.Context, s *message.Session) error {
		t.Error("handler after a failure should not run")
		return nil
	})

	err := d.Dispatch(context.Background(), &message.Session{})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
}

func TestDispatcher_Canceled(t *testing.T) {
	d := NewDispatcher(logger.NewNoop())
	d.BeforeSend("h", func(ctx context.Context, s *message.Session) error {
		t.Error("handler should not run on a canceled context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Dispatch(ctx, &message.Session{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
