package slog_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/mock"
	sitetextslog "github.com/fwojciec/sitetext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs title and text size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(html string, pageURL string) (*sitetext.ExtractResult, error) {
				return &sitetext.ExtractResult{Title: "FAQ", Text: "# FAQ"}, nil
			},
		}

		result, err := sitetextslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract("<html></html>", "https://example.com/faq")

		require.NoError(t, err)
		assert.Equal(t, "FAQ", result.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=https://example.com/faq")
		assert.Contains(t, output, "title=FAQ")
		assert.Contains(t, output, "bytes=5")
		assert.NotContains(t, output, "empty=true")
	})

	t.Run("flags empty extractions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(html string, pageURL string) (*sitetext.ExtractResult, error) {
				return &sitetext.ExtractResult{}, nil
			},
		}

		_, err := sitetextslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract("", "https://example.com/nav")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "empty=true")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(html string, pageURL string) (*sitetext.ExtractResult, error) {
				return nil, errors.New("parse failed")
			},
		}

		_, err := sitetextslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract("", "https://example.com/x")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"parse failed\"")
	})
}
