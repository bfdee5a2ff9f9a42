package main

import (
	"context"
	"log/slog"
	"os"

	"pixelstore/config"
	"pixelstore/internal/delivery"
	"pixelstore/internal/delivery/http"
	"pixelstore/internal/delivery/http/middleware"
	"pixelstore/internal/delivery/http/router/handler"
	"pixelstore/internal/domain/service"
	"pixelstore/internal/infra/auth"
	"pixelstore/internal/infra/blob"
	logs "pixelstore/internal/infra/log"
	"pixelstore/internal/infra/persistence/firestoredb"
	"pixelstore/internal/infra/pubsub"
	"pixelstore/internal/infra/qrcode"
	"pixelstore/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firestoredb.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestoredb.NewProductRepository,
			firestoredb.NewProductWatcher,
			firestoredb.NewOrderRepository,
			firestoredb.NewOrderWatcher,
			firestoredb.NewReviewRepository,
			firestoredb.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			blob.NewImageStore,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogMirror,
			impl.NewOrderMirror,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewReviewService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewReviewHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
