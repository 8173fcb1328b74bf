package mailmock

import (
	"sync"
	"time"

	"vms-backend/internal/domain/notify"
)

var _ notify.Mailer = (*Mailer)(nil)

// Mailer records messages instead of sending them.
type Mailer struct {
	mu        sync.Mutex
	Sent      []notify.Message
	Scheduled []Scheduled
}

type Scheduled struct {
	At  time.Time
	Msg notify.Message
}

func New() *Mailer { return &Mailer{} }

func (m *Mailer) Enqueue(msg notify.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
}

func (m *Mailer) EnqueueAt(at time.Time, msg notify.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scheduled = append(m.Scheduled, Scheduled{At: at, Msg: msg})
}

// Templates returns the template names of sent messages, in order.
func (m *Mailer) Templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Sent))
	for _, s := range m.Sent {
		out = append(out, s.Template)
	}
	return out
}
