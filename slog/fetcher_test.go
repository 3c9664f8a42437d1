package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/mock"
	sitetextslog "github.com/fwojciec/sitetext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sitetext.Response, error) {
				return &sitetext.Response{URL: url, StatusCode: 200, HTML: "<html>content</html>"}, nil
			},
		}

		fetcher := sitetextslog.NewLoggingFetcher(inner, debugLogger(&buf))
		resp, err := fetcher.Fetch(context.Background(), "https://example.com/support")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", resp.HTML)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/support")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sitetext.Response, error) {
				return nil, &sitetext.HTTPError{URL: url, StatusCode: 404}
			},
		}

		fetcher := sitetextslog.NewLoggingFetcher(inner, debugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com/support")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=http")
		assert.Contains(t, output, "err=\"HTTP 404 for https://example.com/support\"")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sitetext.Response, error) {
				return nil, errors.New("network error")
			},
		}

		_, _ = sitetextslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		assert.Empty(t, buf.String())
	})
}
