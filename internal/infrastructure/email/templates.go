package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:0;background:#F8FAFC;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" border="0">
    <tr><td style="padding:40px 20px;">
      <table role="presentation" width="600" cellspacing="0" cellpadding="0" border="0" style="margin:0 auto;background:#FFFFFF;border-radius:12px;">
        <tr><td style="padding:32px 40px;background:#1C5D99;color:#FFFFFF;border-radius:12px 12px 0 0;">
          <h2 style="margin:0;font-size:22px;">{{.Title}}</h2>
        </td></tr>
        <tr><td style="padding:32px 40px;color:#334155;font-size:15px;line-height:1.6;">
          {{range .Paragraphs}}<p style="margin:0 0 16px;">{{.}}</p>{{end}}
          {{if .Rows}}<table role="presentation" cellspacing="0" cellpadding="6" border="0">
            {{range .Rows}}<tr><td style="color:#64748B;">{{.Label}}</td><td><strong>{{.Value}}</strong></td></tr>{{end}}
          </table>{{end}}
        </td></tr>
        <tr><td style="padding:24px 40px;background:#F8FAFC;font-size:12px;color:#94A3B8;border-radius:0 0 12px 12px;">
          {{.Footer}}
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type row struct{ Label, Value string }

type page struct {
	Title      string
	Paragraphs []string
	Rows       []row
	Footer     string
}

func render(p page) string {
	if p.Footer == "" {
		p.Footer = "This is an automated message."
	}
	var buf bytes.Buffer
	if err := layout.Execute(&buf, p); err != nil {
		// the template is static, so only a programming error lands here
		return ""
	}
	return buf.String()
}

func plain(p page) string {
	var sb strings.Builder
	sb.WriteString(p.Title + "\n\n")
	for _, para := range p.Paragraphs {
		sb.WriteString(para + "\n\n")
	}
	for _, r := range p.Rows {
		fmt.Fprintf(&sb, "%s: %s\n", r.Label, r.Value)
	}
	return sb.String()
}

func compose(to, subject string, p page) Message {
	return Message{To: to, Subject: subject, Text: plain(p), HTML: render(p)}
}

// LeadNotificationMessage is sent to the firm's inbox for each contact lead.
func LeadNotificationMessage(to string, n LeadNotification) Message {
	msg := compose(to, "New contact request: "+n.Subject, page{
		Title: "New contact request",
		Rows: []row{
			{"Name", n.Name},
			{"Email", n.Email},
			{"Subject", n.Subject},
		},
		Paragraphs: []string{n.Message},
	})
	msg.ReplyTo = n.Email
	return msg
}

func ApplicationConfirmationMessage(c ApplicationConfirmation) Message {
	return compose(c.Email, "We received your application", page{
		Title: "Thank you for applying",
		Paragraphs: []string{
			fmt.Sprintf("Hi %s,", c.FullName),
			fmt.Sprintf("Thanks for your interest in the %s role. Our team will review your application and get back to you.", c.Position),
		},
	})
}

func ApplicationNotificationMessage(to string, n ApplicationNotification) Message {
	msg := compose(to, "New application: "+n.Position, page{
		Title: "New job application",
		Rows: []row{
			{"Name", n.FullName},
			{"Email", n.Email},
			{"Phone", n.Phone},
			{"Position", n.Position},
			{"Department", n.Department},
			{"Resume", n.ResumeURL},
		},
	})
	msg.ReplyTo = n.Email
	return msg
}

func WelcomeMessage(w Welcome) Message {
	greeting := "Hi,"
	if w.Name != "" {
		greeting = fmt.Sprintf("Hi %s,", w.Name)
	}
	return compose(w.Email, "Welcome to our newsletter", page{
		Title: "You're subscribed",
		Paragraphs: []string{
			greeting,
			"Thanks for subscribing. You'll receive our insights on investment, tax and business growth.",
		},
		Footer: "You can unsubscribe at any time.",
	})
}

// NewsletterMessage uses the supplied HTML verbatim when present, otherwise
// wraps the plain content in the standard layout.
func NewsletterMessage(to, subject, content, htmlContent string) Message {
	msg := Message{To: to, Subject: subject, Text: content, HTML: htmlContent}
	if htmlContent == "" {
		msg.HTML = render(page{
			Title:      subject,
			Paragraphs: strings.Split(content, "\n\n"),
			Footer:     "You are receiving this because you subscribed to our newsletter.",
		})
	}
	return msg
}
