package components

import (
	"context"
	"log/slog"
	"time"

	"talazo-api/internal/infra/readstore"
	"talazo-api/internal/infra/repository"
	"talazo-api/internal/usecase/commands"
	"talazo-api/internal/usecase/queries"

	"go.uber.org/fx"
)

const idempotencySweepInterval = time.Hour

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
	fx.Invoke(startIdempotencySweeper),
)

// Expired idempotency claims are dead weight once their TTL passes; a
// background ticker clears them out.
func startIdempotencySweeper(lc fx.Lifecycle, repo *repository.IdempotencyRepository) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(idempotencySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						deleted, err := repo.DeleteExpired(ctx)
						if err != nil {
							slog.Warn("idempotency key sweep failed", "error", err)
							continue
						}
						if deleted > 0 {
							slog.Info("swept expired idempotency keys", "deleted", deleted)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		// The sweeper needs the concrete type, so the interface is bound
		// separately instead of through fx.As.
		repository.NewIdempotencyRepository,
		func(r *repository.IdempotencyRepository) commands.IdempotencyRepository { return r },
		fx.Annotate(
			repository.NewNotificationLogRepository,
			fx.As(new(commands.NotificationLogRepository)),
		),
	),
)
