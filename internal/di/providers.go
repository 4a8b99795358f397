package di

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/handler/api"
	mid "FinSight/internal/middleware"
	internalrepo "FinSight/internal/repository"
	"FinSight/internal/service/embedder"
	"FinSight/internal/service/newswire"
	"FinSight/internal/services/retrieval"
	"FinSight/internal/usecase"
	"FinSight/pkg/cache"
	pkgch "FinSight/pkg/clickhouse"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	pkgkafka "FinSight/pkg/kafka"
	"FinSight/pkg/logger"
	"FinSight/pkg/metrics"
	"FinSight/pkg/queue"
	"FinSight/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEmbedder creates the OpenAI embedding client.
func ProvideEmbedder(cfg *config.Config) (repository.Embedder, error) {
	return embedder.NewOpenAIEmbedder(cfg.Embedder.APIKey, cfg.Embedder.Model)
}

// ProvideVectorStore creates the pgvector-backed document index.
func ProvideVectorStore(cfg *config.Config, emb repository.Embedder) (repository.VectorStore, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.Host, cfg.Postgres.Port,
		cfg.Postgres.Database, cfg.Postgres.SSLMode)

	store, err := internalrepo.NewPostgresVectorStore(dsn, cfg.Postgres.Table, emb)
	if err != nil {
		return nil, fmt.Errorf("vector store: %w", err)
	}
	return store, nil
}

// ProvideClickHouseClient creates the ClickHouse client and initializes
// the audit schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append(
		[]string{"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database},
		internalrepo.SchemaStatements(cfg.ClickHouse.Database+".query_log")...,
	)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideQueryLog creates the ClickHouse query audit log, or nil when
// ClickHouse is disabled.
func ProvideQueryLog(chClient *pkgch.Client, cfg *config.Config) repository.QueryLog {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseQueryLog(chClient.DB(), cfg.ClickHouse.Database+".query_log")
}

// ProvideCache creates the layered answer cache, or nil when caching is
// disabled. A Redis layer is added only when an address is configured.
func ProvideCache(cfg *config.Config, lgr *logger.Logger) (cache.Service, *cache.RedisCache) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	memory := cache.NewMemoryCache()
	if cfg.Cache.Redis.Addr == "" {
		return memory, nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		lgr.Warn("redis cache unavailable, using memory only", logger.Error(err))
		return memory, nil
	}

	memoryTTL := cfg.Cache.MemoryTTL
	if memoryTTL == 0 {
		memoryTTL = time.Minute
	}
	return cache.NewLayeredCache(memory, redisCache, memoryTTL), redisCache
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend
// is selected.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideArticlePublisher creates the Kafka article publisher, or nil
// for the direct backend.
func ProvideArticlePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the ingest topic consumer when the kafka
// backend is selected.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaArticlesHandler creates the handler that embeds and
// indexes articles read from the ingest topic.
func ProvideKafkaArticlesHandler(store repository.VectorStore, emb repository.Embedder, m repository.Metrics, cfg *config.Config) *usecase.KafkaArticlesHandler {
	return usecase.NewKafkaArticlesHandler(cfg.Kafka.Topic, store, emb, m)
}

// ProvideNewsStream creates the newswire WebSocket stream, or nil when
// the newswire is disabled.
func ProvideNewsStream(cfg *config.Config) repository.NewsStream {
	if !cfg.Newswire.Enabled {
		return nil
	}
	return newswire.New(
		cfg.Newswire.APIKey,
		cfg.Newswire.WebSocketURL,
		cfg.Newswire.Feeds,
		cfg.Newswire.ReconnectDelay,
		cfg.Newswire.PingInterval,
	)
}

// ProvideArticleProcessor creates the backend-routing article processor.
func ProvideArticleProcessor(
	pub repository.Publisher,
	store repository.VectorStore,
	emb repository.Embedder,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ArticleProcessor {
	return usecase.NewArticleProcessor(pub, store, emb, m, cfg.Backend.Type)
}

// ProvideArticleCollector wires the newswire stream through the ingest
// pipeline into the processor. Returns nil when the newswire is off.
func ProvideArticleCollector(
	stream repository.NewsStream,
	processor *usecase.ArticleProcessor,
	m repository.Metrics,
) *usecase.ArticleCollector {
	if stream == nil {
		return nil
	}
	pipe := mid.NewIngestPipeline(processor, m,
		mid.WithMaxRPS(20),
		mid.WithBufferSize(1000),
	)
	return usecase.NewArticleCollector(stream, processor, m, pipe)
}

// ProvideRetriever creates the two-stage document retriever.
func ProvideRetriever(store repository.VectorStore, emb repository.Embedder, lgr *logger.Logger) domsvc.Retriever {
	return retrieval.NewRetriever(store, emb, lgr)
}

// ProvideQueryEngine assembles the question-answering engine.
func ProvideQueryEngine(
	retriever domsvc.Retriever,
	m repository.Metrics,
	lgr *logger.Logger,
	answerCache cache.Service,
	queryLog repository.QueryLog,
	cfg *config.Config,
) *usecase.QueryEngine {
	opts := []usecase.QueryEngineOption{
		usecase.WithPreviewLength(cfg.Retrieval.PreviewLength),
		usecase.WithIndicatorWindows(cfg.Analysis.SMAWindow, cfg.Analysis.RSIWindow),
	}
	if answerCache != nil {
		ttl := cfg.Cache.TTL
		if ttl == 0 {
			ttl = 5 * time.Minute
		}
		opts = append(opts, usecase.WithAnswerCache(answerCache, ttl))
	}
	if queryLog != nil {
		opts = append(opts, usecase.WithQueryLog(queryLog))
	}
	return usecase.NewQueryEngine(retriever, m, lgr, opts...)
}

// ProvideCorpusBuilder creates the full-rebuild job.
func ProvideCorpusBuilder(store repository.VectorStore, emb repository.Embedder, m repository.Metrics, lgr *logger.Logger) *usecase.CorpusBuilder {
	return usecase.NewCorpusBuilder(store, emb, m, lgr)
}

// ProvideJobQueue creates the Redis-backed rebuild queue, sharing the
// cache's Redis connection. Returns nil without Redis.
func ProvideJobQueue(lgr *logger.Logger, redisCache *cache.RedisCache, builder *usecase.CorpusBuilder) *queue.RedisQueue {
	if redisCache == nil {
		return nil
	}
	q := queue.NewRedisQueue(lgr, &queue.QueueConfig{
		Workers:    1,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, redisCache.Client(), queue.ModeProducerConsumer)
	q.RegisterJob(builder)
	return q
}

// ProvideQueryHandler creates the HTTP API handler.
func ProvideQueryHandler(
	lgr *logger.Logger,
	engine *usecase.QueryEngine,
	store repository.VectorStore,
	jobQueue *queue.RedisQueue,
	cfg *config.Config,
) xhttp.Handler {
	opts := []api.QueryHandlerOption{}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Capacity > 0 {
		opts = append(opts, api.WithRateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec))
	}
	if jobQueue != nil {
		opts = append(opts, api.WithRebuildQueue(jobQueue))
	}
	return api.NewQueryEchoHandler(lgr, engine, store, opts...)
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	handler xhttp.Handler,
	collector *usecase.ArticleCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaArticlesHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	jobQueue *queue.RedisQueue,
	store repository.VectorStore,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if producer != nil && cfg.Kafka.LogTopic != "" {
		lgr.AddCollector(&logger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return server.New(cfg, lgr, handler, collector, consumer, kh, chClient, jobQueue, store)
}
