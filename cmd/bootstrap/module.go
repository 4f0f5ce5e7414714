package bootstrap

import (
	"talazo-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	MailerModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
