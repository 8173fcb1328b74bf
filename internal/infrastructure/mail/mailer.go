package mail

import (
	"context"
	"sync"
	"time"

	"vms-backend/internal/domain/notify"
)

const sendTimeout = 30 * time.Second

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Envelope is a rendered message.
type Envelope struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

// Mailer is a bounded queue drained by a fixed worker pool. A full queue
// drops the message with a warning.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	log      Logger

	mu     sync.RWMutex
	closed bool
	queue  chan notify.Message
	wg     sync.WaitGroup
}

var _ notify.Mailer = (*Mailer)(nil)

func NewMailer(sender Sender, renderer *Renderer, logger Logger, workers, queueSize int) *Mailer {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	m := &Mailer{
		sender:   sender,
		renderer: renderer,
		log:      logger,
		queue:    make(chan notify.Message, queueSize),
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.work()
	}
	return m
}

func (m *Mailer) Enqueue(msg notify.Message) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		m.log.Warnf("mail: mailer closed, dropping %q to %s", msg.Template, msg.To)
		return
	}
	select {
	case m.queue <- msg:
	default:
		m.log.Warnf("mail: queue full, dropping %q to %s", msg.Template, msg.To)
	}
}

// EnqueueAt delays the message until at. Pending timers do not survive a restart.
func (m *Mailer) EnqueueAt(at time.Time, msg notify.Message) {
	d := time.Until(at)
	if d <= 0 {
		m.Enqueue(msg)
		return
	}
	time.AfterFunc(d, func() { m.Enqueue(msg) })
}

// Close stops accepting messages and waits for queued ones to be sent.
func (m *Mailer) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Mailer) work() {
	defer m.wg.Done()
	for msg := range m.queue {
		m.deliver(msg)
	}
}

func (m *Mailer) deliver(msg notify.Message) {
	if msg.To == "" {
		m.log.Warnf("mail: %q has no recipient", msg.Template)
		return
	}
	env, err := m.renderer.Render(msg)
	if err != nil {
		m.log.Errorf("mail: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := m.sender.Send(ctx, env); err != nil {
		m.log.Errorf("mail: sending %q to %s: %v", msg.Template, msg.To, err)
		return
	}
	m.log.Infof("mail: sent %q to %s", msg.Template, msg.To)
}
