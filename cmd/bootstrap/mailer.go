package bootstrap

import (
	"talazo-api/internal/notify"
	"talazo-api/internal/pkg/config"
	"talazo-api/internal/pkg/mailer"
	"talazo-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var MailerModule = fx.Module("mailer",
	fx.Provide(
		fx.Annotate(
			func(cfg config.MailConfig) *mailer.ResendMailer {
				return mailer.NewResendMailer(cfg.ResendAPIKey)
			},
			fx.As(new(mailer.Mailer)),
		),
		fx.Annotate(
			notify.NewNotifier,
			fx.As(new(commands.BookingNotifier)),
		),
	),
)
