//go:build wireinject
// +build wireinject

package di

import (
	"FinSight/pkg/config"
	"FinSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideEmbedder,
		ProvideVectorStore,
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideQueryLog,
		ProvideArticlePublisher,
		ProvideNewsStream,

		// Use cases
		ProvideArticleProcessor,
		ProvideArticleCollector,
		ProvideKafkaArticlesHandler,
		ProvideRetriever,
		ProvideQueryEngine,
		ProvideCorpusBuilder,
		ProvideJobQueue,

		// HTTP and application server
		ProvideQueryHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
