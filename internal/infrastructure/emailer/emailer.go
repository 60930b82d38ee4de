package emailer

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"

	"RepoScout/internal/config"
	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = 587
)

var bodyTemplate = template.Must(template.New("digest").Parse(`<div style="font-family:system-ui,Segoe UI,Arial,sans-serif">
  <h2>New Projects Added</h2>
  <p>{{len .}} new item(s) inserted into the tracking database.</p>
  <ul>
{{- range .}}
    <li style="margin-bottom:10px">
      <strong>{{.Org}}/{{.Name}}</strong> (score {{.Score}})
      <br><a href="{{.RepoURL}}">{{.RepoURL}}</a>
      {{- if .Note}}
      <div style="color:#444;margin-top:4px">{{.Note}}</div>
      {{- end}}
    </li>
{{- end}}
  </ul>
  <hr/>
  <small>Sent by RepoScout</small>
</div>
`))

// Notifier emails insertion digests through SMTP.
type Notifier struct {
	host      string
	port      int
	user      string
	password  string
	recipient string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the sender identity and recipient address.
func NewNotifier(cfg config.EmailConfig) *Notifier {
	return &Notifier{
		host:      smtpHost,
		port:      smtpPort,
		user:      cfg.User,
		password:  cfg.Password,
		recipient: cfg.Recipient,
	}
}

// NotifyInserted emails a digest of the newly inserted projects. Any missing
// credential makes the send a no-op reported as skipped, not an error.
func (n *Notifier) NotifyInserted(ctx context.Context, projects []domain.RankedProject) ports.SendResult {
	if n.user == "" || n.password == "" || n.recipient == "" {
		return ports.SendResult{Outcome: ports.SendSkipped}
	}

	body, err := BuildProjectsEmail(projects)
	if err != nil {
		return failed(err)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.user); err != nil {
		return failed(fmt.Errorf("set sender: %w", err))
	}
	if err := msg.To(n.recipient); err != nil {
		return failed(fmt.Errorf("set recipient: %w", err))
	}
	msg.Subject(fmt.Sprintf("RepoScout: %d new project(s) added", len(projects)))
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.user),
		mail.WithPassword(n.password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return failed(fmt.Errorf("smtp client: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return failed(fmt.Errorf("send digest: %w", err))
	}
	return ports.SendResult{Outcome: ports.SendSent}
}

// BuildProjectsEmail renders the HTML digest body: one list item per inserted
// project with organization, score, link and optional note.
func BuildProjectsEmail(projects []domain.RankedProject) (string, error) {
	var body strings.Builder
	if err := bodyTemplate.Execute(&body, projects); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return body.String(), nil
}

func failed(err error) ports.SendResult {
	return ports.SendResult{Outcome: ports.SendFailed, Err: err}
}
