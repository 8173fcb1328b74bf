package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"vms-backend/internal/domain/notify"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer turns a notify.Message into a ready-to-send Envelope.
type Renderer struct {
	appName     string
	frontendURL string

	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewRenderer(appName, frontendURL string) *Renderer {
	return &Renderer{appName: appName, frontendURL: frontendURL, cache: map[string]*template.Template{}}
}

type templateData struct {
	AppName         string
	Subject         string
	FrontendBaseURL string
	Data            map[string]any
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[name]; ok {
		return t, nil
	}
	t, err := template.New(name).
		ParseFS(templateFS, "templates/_base.gohtml", "templates/"+name+".gohtml")
	if err != nil {
		return nil, fmt.Errorf("mail template %q: %w", name, err)
	}
	r.cache[name] = t
	return t, nil
}

func (r *Renderer) Render(msg notify.Message) (Envelope, error) {
	t, err := r.lookup(msg.Template)
	if err != nil {
		return Envelope{}, err
	}
	var buf bytes.Buffer
	err = t.ExecuteTemplate(&buf, "base", templateData{
		AppName:         r.appName,
		Subject:         msg.Subject,
		FrontendBaseURL: r.frontendURL,
		Data:            msg.Data,
	})
	if err != nil {
		return Envelope{}, fmt.Errorf("render %q: %w", msg.Template, err)
	}
	return Envelope{
		To:      msg.To,
		ToName:  msg.ToName,
		Subject: "[" + r.appName + "] " + msg.Subject,
		HTML:    buf.String(),
	}, nil
}
