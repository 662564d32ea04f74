package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// Sender delivers account verification messages.
type Sender interface {
	SendVerification(ctx context.Context, user model.User, token string) error
}

// VerificationLink builds the front-end URL that confirms an account.
func VerificationLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/auth/verify?token=" + url.QueryEscape(token)
}

var sendMail = smtp.SendMail

// SMTPSender relays verification mails through an SMTP server.
type SMTPSender struct {
	addr        string
	from        string
	auth        smtp.Auth
	frontendURL string
	logger      *slog.Logger
}

// NewSMTPSender creates sender for host:port. Credentials are optional.
func NewSMTPSender(host string, port int, username, password, from, frontendURL string, logger *slog.Logger) (*SMTPSender, error) {
	if host == "" {
		return nil, fmt.Errorf("mail server must be provided")
	}
	if from == "" {
		return nil, fmt.Errorf("mail sender address must be provided")
	}
	s := &SMTPSender{
		addr:        net.JoinHostPort(host, strconv.Itoa(port)),
		from:        from,
		frontendURL: frontendURL,
		logger:      logger,
	}
	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s, nil
}

// SendVerification mails the verification link to user.
func (s *SMTPSender) SendVerification(ctx context.Context, user model.User, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := verificationMessage(s.from, user, VerificationLink(s.frontendURL, token))
	if err := sendMail(s.addr, s.auth, s.from, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	s.logger.Info("verification mail sent", slog.Int64("user_id", user.ID))
	return nil
}

func verificationMessage(from string, user model.User, link string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", user.Email)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", "Vérifiez votre adresse email"))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "Bonjour %s,\r\n\r\n", strings.TrimSpace(user.FirstName+" "+user.LastName))
	buf.WriteString("Merci pour votre inscription. Confirmez votre adresse en ouvrant ce lien :\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", link)
	buf.WriteString("Ce lien expire dans 24 heures.\r\n")
	return buf.Bytes()
}

// LogSender records the verification link instead of mailing it.
type LogSender struct {
	frontendURL string
	logger      *slog.Logger
}

// NewLogSender creates a sender for setups without an SMTP relay.
func NewLogSender(frontendURL string, logger *slog.Logger) *LogSender {
	return &LogSender{frontendURL: frontendURL, logger: logger}
}

func (s *LogSender) SendVerification(_ context.Context, user model.User, token string) error {
	s.logger.Info("verification mail not sent, no mail server configured",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("link", VerificationLink(s.frontendURL, token)),
	)
	return nil
}
