package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type SendgridSender struct {
	key  string
	from *sgmail.Email
}

func NewSendgridSender(key, fromAddr, fromName string) *SendgridSender {
	return &SendgridSender{key: key, from: sgmail.NewEmail(fromName, fromAddr)}
}

func (s *SendgridSender) prepare(env Envelope) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = env.Subject
	p.AddTos(sgmail.NewEmail(env.ToName, env.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", env.HTML))
	return m
}

func (s *SendgridSender) Send(_ context.Context, env Envelope) error {
	req := sendgrid.GetRequest(s.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(env))

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// LogSender is used when no mail credentials are configured: it only warns.
type LogSender struct{ log Logger }

func NewLogSender(logger Logger) *LogSender { return &LogSender{log: logger} }

func (s *LogSender) Send(_ context.Context, env Envelope) error {
	s.log.Warnf("mail: delivery not configured, dropping %q to %s", env.Subject, env.To)
	return nil
}
