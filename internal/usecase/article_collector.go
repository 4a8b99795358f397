package usecase

import (
	"context"

	"FinSight/internal/domain/models"
	drepo "FinSight/internal/domain/repository"
	mid "FinSight/internal/middleware"
)

// ArticleCollector reads the newswire stream and feeds articles into
// the ingest pipeline.
type ArticleCollector struct {
	stream  drepo.NewsStream
	proc    *ArticleProcessor
	metrics drepo.Metrics
	pipe    *mid.IngestPipeline
}

// NewArticleCollector creates a new ArticleCollector instance.
func NewArticleCollector(stream drepo.NewsStream, proc *ArticleProcessor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *ArticleCollector {
	return &ArticleCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the newswire stream is connected.
func (c *ArticleCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *ArticleCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	artCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, artCh, errCh)
	return nil
}

func (c *ArticleCollector) consume(ctx context.Context, artCh <-chan *models.Article, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case a := <-artCh:
			if a == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, a)
			} else {
				_ = c.proc.Process(ctx, a)
			}
		}
	}
}

// Processor returns the underlying ArticleProcessor for lifecycle management.
func (c *ArticleCollector) Processor() *ArticleProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *ArticleCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
