// Package remote pushes samples to a Prometheus remote-write endpoint.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
	"go.uber.org/zap"

	"seqgen/timeline"
)

const writePath = "/api/v1/write"

type Client struct {
	url        *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient targets the remote-write handler below baseURL.
func NewClient(baseURL string, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("missing prometheus url")
	}
	parsedUrl, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid prometheus url: %w", err)
	}
	parsedUrl.Path = path.Join(parsedUrl.Path, writePath)

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url: parsedUrl,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

func (c *Client) URL() string {
	return c.url.String()
}

// Write sends wr. A 400 answer usually means the samples were already
// written; it is logged and not treated as an error.
func (c *Client) Write(ctx context.Context, wr *prometheus.WriteRequest) error {
	data, err := proto.Marshal(wr)
	if err != nil {
		return fmt.Errorf("encoding write request: %w", err)
	}
	encoded := snappy.Encode(nil, data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url.String(), bytes.NewReader(encoded))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("Content-Encoding", "snappy")
	req.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusBadRequest {
			// possibly duplicate data
			c.logger.Warn("remote write rejected samples, ignoring",
				zap.Int("status", resp.StatusCode))
			return nil
		}
		return fmt.Errorf("unexpected remote write status code: %v", resp.StatusCode)
	}
	return nil
}

// Request wraps samples for the series described by labels in a write
// request with gauge metadata.
func Request(labels []*prometheus.Label, samples []timeline.Sample) *prometheus.WriteRequest {
	ts := &prometheus.TimeSeries{
		Labels: labels,
	}
	for _, s := range samples {
		ts.Samples = append(ts.Samples, &prometheus.Sample{
			Value:     s.Value,
			Timestamp: s.Timestamp,
		})
	}

	wr := &prometheus.WriteRequest{}
	wr.Timeseries = append(wr.Timeseries, ts)
	wr.Metadata = append(wr.Metadata, &prometheus.MetricMetadata{
		Type:             prometheus.MetricMetadata_GAUGE,
		MetricFamilyName: metricName(labels),
	})
	return wr
}

func metricName(labels []*prometheus.Label) string {
	for _, l := range labels {
		if l.Name == "__name__" {
			return l.Value
		}
	}
	return ""
}
