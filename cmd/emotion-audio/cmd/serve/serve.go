package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emotion-audio/cmd/emotion-audio/cmd/bootstrap"
	"emotion-audio/internal/api/server"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

- POST /analyze-audio accepts a multipart "file" field (.wav, .mp3, .m4a, .ogg, up to 10 MB)
- GET /health reports the loaded models
- GET /metrics exposes Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, application, cleanup, err := bootstrap.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		srv := server.NewServer(server.Config{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			Environment:     cfg.Server.Environment,
		}, server.Dependencies{
			Service:   application.Service,
			Validator: application.Validator,
			Store:     application.Store,
			Metrics:   application.Metrics,
			Gatherer:  application.Registry,
			Logger:    application.Logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application.Logger.Info("Models ready",
			zap.String("whisper", application.Service.Models().Whisper),
			zap.String("emotion_classifier", application.Service.Models().EmotionClassifier),
		)
		return srv.Run(ctx)
	},
}
