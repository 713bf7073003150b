package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers mail through a plain SMTP relay. Authentication is
// deliberately absent; the relay is expected to sit inside the deployment
// network.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
