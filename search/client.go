// Package search holds the handle to the search index the crawler feeds.
package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/ims24/ims24/config"
	"go.uber.org/zap"
)

// Client wraps the Elasticsearch client for the configured search index
type Client struct {
	es      *elasticsearch.Client
	address string
	logger  *zap.Logger
}

// NewClient builds a client for cfg. It does not contact the server.
func NewClient(cfg config.SearchConfig, logger *zap.Logger) (*Client, error) {
	return newClient(cfg.URL(), logger)
}

func newClient(url string, logger *zap.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  []string{url},
		MaxRetries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	logger.Info("search client configured", zap.String("address", url))

	return &Client{
		es:      es,
		address: url,
		logger:  logger,
	}, nil
}

// Address returns the search index base URL
func (c *Client) Address() string {
	return c.address
}

// HealthCheck pings the search index
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search health check failed (%s): %w", c.address, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.IsError() {
		return fmt.Errorf("search health check failed (%s): status %d", c.address, res.StatusCode)
	}

	return nil
}
