package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"vms-backend/internal/domain/notify"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []Envelope
	err   error
	block chan struct{}
}

func (s *recordingSender) Send(_ context.Context, env Envelope) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, env)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type testLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (l *testLogger) Infof(string, ...interface{}) {}
func (l *testLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}
func (l *testLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, format)
}

func approvedMsg(to string) notify.Message {
	return notify.Message{
		To:       to,
		Subject:  "Membership approved",
		Template: notify.TemplateApproved,
		Data:     map[string]any{"name": "Juan", "username": "jsmith"},
	}
}

func TestRenderer_Approved(t *testing.T) {
	r := NewRenderer("VOSA", "https://vosa.example.edu")
	env, err := r.Render(approvedMsg("j@x.edu"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if env.Subject != "[VOSA] Membership approved" {
		t.Errorf("Subject = %q", env.Subject)
	}
	if !strings.Contains(env.HTML, "https://vosa.example.edu/login") {
		t.Errorf("approval mail lacks login url: %s", env.HTML)
	}
	if !strings.Contains(env.HTML, "jsmith") {
		t.Errorf("approval mail lacks username")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r := NewRenderer("VOSA", "")
	if _, err := r.Render(notify.Message{To: "a@b.c", Template: "nope"}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestMailer_DeliversAndCloses(t *testing.T) {
	s := &recordingSender{}
	lg := &testLogger{}
	m := NewMailer(s, NewRenderer("VOSA", "http://fe"), lg, 2, 10)

	for i := 0; i < 5; i++ {
		m.Enqueue(approvedMsg("j@x.edu"))
	}
	m.Close()

	if got := s.count(); got != 5 {
		t.Fatalf("sent = %d, want 5", got)
	}
	// enqueue after close is dropped, never panics
	m.Enqueue(approvedMsg("j@x.edu"))
	if s.count() != 5 {
		t.Fatal("message sent after Close")
	}
}

func TestMailer_DropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	s := &recordingSender{block: block}
	lg := &testLogger{}
	m := NewMailer(s, NewRenderer("VOSA", "http://fe"), lg, 1, 1)

	// first message occupies the worker, second fills the queue
	m.Enqueue(approvedMsg("a@x.edu"))
	deadline := time.Now().Add(time.Second)
	for len(m.queue) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	m.Enqueue(approvedMsg("b@x.edu"))
	m.Enqueue(approvedMsg("c@x.edu"))

	close(block)
	m.Close()

	if got := s.count(); got != 2 {
		t.Fatalf("sent = %d, want 2", got)
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if len(lg.warns) == 0 {
		t.Fatal("expected a queue-full warning")
	}
}

func TestMailer_SendErrorsAreLogged(t *testing.T) {
	s := &recordingSender{err: errors.New("smtp down")}
	lg := &testLogger{}
	m := NewMailer(s, NewRenderer("VOSA", "http://fe"), lg, 1, 4)
	m.Enqueue(approvedMsg("j@x.edu"))
	m.Close()

	lg.mu.Lock()
	defer lg.mu.Unlock()
	if len(lg.errs) != 1 {
		t.Fatalf("errors logged = %d, want 1", len(lg.errs))
	}
}

func TestMailer_EnqueueAtPastSendsNow(t *testing.T) {
	s := &recordingSender{}
	m := NewMailer(s, NewRenderer("VOSA", "http://fe"), &testLogger{}, 1, 4)
	m.EnqueueAt(time.Now().Add(-time.Hour), approvedMsg("j@x.edu"))
	m.Close()
	if s.count() != 1 {
		t.Fatalf("sent = %d, want 1", s.count())
	}
}
