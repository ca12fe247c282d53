//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"emotion-audio/internal/app/analysis"
	"emotion-audio/internal/config"
)

// InitializeApp builds the service graph. The returned cleanup closes the cache connection.
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		provideRegistry,
		provideStore,
		provideValidator,
		provideRecorder,
		provideTranscriber,
		provideClassifier,
		analysis.NewService,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
