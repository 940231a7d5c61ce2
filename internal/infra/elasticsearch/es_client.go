package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"likering/internal/config"
	"likering/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

var client *elasticsearch.Client

// Init connects and pings the cluster.
func Init(cfg *config.ElasticsearchConfig) error {
	es, err := NewClient(cfg.Hosts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	client = es
	logger.Info("Elasticsearch connected", zap.Strings("hosts", cfg.Hosts))
	return nil
}

// NewClient builds a client without contacting the cluster. Hosts without a scheme get http://.
func NewClient(hosts []string) (*elasticsearch.Client, error) {
	addrs := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		addrs = append(addrs, h)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     addrs,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * 100 * time.Millisecond },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return es, nil
}

// Get returns the client set by Init, or nil.
func Get() *elasticsearch.Client {
	return client
}

// Close drops the global client.
func Close() error {
	client = nil
	logger.Info("Elasticsearch client closed")
	return nil
}
