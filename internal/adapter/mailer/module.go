package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/worker"
)

// Module exposes the verification mail sender to fx graph.
var Module = fx.Provide(
	newSender,
	func(s Sender) worker.Mailer { return s },
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	mail := p.Config.Mail
	if mail.Server == "" {
		return NewLogSender(p.Config.FrontendURL, p.Logger), nil
	}
	return NewSMTPSender(mail.Server, mail.Port, mail.Username, mail.Password, mail.From, p.Config.FrontendURL, p.Logger)
}
