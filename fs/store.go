// Package fs persists crawl snapshots as plain files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitetext"
)

// Layout names the artifacts a Store writes. Empty names are skipped.
type Layout struct {
	// JSON receives the ordered URL to text mapping.
	JSON string
	// Text receives the framed text dump of every non-empty page.
	Text string
	// Visited receives the sorted visited URLs.
	Visited string
	// Discovered receives the successfully fetched URLs in fetch order.
	Discovered string
}

// Layouts of the three crawl modes.
var (
	TextLayout = Layout{
		JSON:    "website_data.json",
		Text:    "website_text.txt",
		Visited: "visited_urls.txt",
	}
	URLLayout = Layout{
		Discovered: "extracted_urls.txt",
		Visited:    "visited_urls.txt",
	}
	ExtractLayout = Layout{
		JSON:    "filtered_content.json",
		Text:    "filtered_content.txt",
		Visited: "processed_urls.txt",
	}
)

const separator = "================================================================================"

// Ensure Store implements sitetext.ProgressStore at compile time.
var _ sitetext.ProgressStore = (*Store)(nil)

// Store rewrites the artifacts of a Layout inside a directory on every
// flush. Each file is replaced atomically, so readers never observe a
// partially written artifact.
type Store struct {
	dir    string
	layout Layout
}

// NewStore creates a Store writing layout into dir. The directory is
// created on the first flush.
func NewStore(dir string, layout Layout) *Store {
	return &Store{dir: dir, layout: layout}
}

// Flush rewrites every artifact of the layout from snapshot.
func (s *Store) Flush(ctx context.Context, snapshot *sitetext.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return sitetext.Errorf(sitetext.EINVALID, "snapshot required")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	pages := uniquePages(snapshot.Pages)

	if s.layout.JSON != "" {
		data, err := FormatJSON(pages)
		if err != nil {
			return err
		}
		if err := s.write(s.layout.JSON, data); err != nil {
			return err
		}
	}
	if s.layout.Text != "" {
		if err := s.write(s.layout.Text, []byte(FormatText(pages))); err != nil {
			return err
		}
	}
	if s.layout.Visited != "" {
		if err := s.write(s.layout.Visited, []byte(FormatURLs(snapshot.Visited))); err != nil {
			return err
		}
	}
	if s.layout.Discovered != "" {
		if err := s.write(s.layout.Discovered, []byte(FormatURLs(snapshot.Discovered))); err != nil {
			return err
		}
	}
	return nil
}

// write replaces name with data through a temporary file and a rename.
func (s *Store) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(s.dir, name))
}

// uniquePages keeps the first position of every URL and the last text
// recorded for it.
func uniquePages(pages []sitetext.Page) []sitetext.Page {
	index := make(map[string]int, len(pages))
	out := make([]sitetext.Page, 0, len(pages))
	for _, p := range pages {
		if i, ok := index[p.URL]; ok {
			out[i] = p
			continue
		}
		index[p.URL] = len(out)
		out = append(out, p)
	}
	return out
}

// FormatJSON renders pages as a JSON object from URL to text, in page
// order, indented by two spaces. Non-ASCII text and HTML characters are
// written as is.
func FormatJSON(pages []sitetext.Page) ([]byte, error) {
	if len(pages) == 0 {
		return []byte("{}"), nil
	}

	var b bytes.Buffer
	b.WriteString("{\n")
	for i, p := range pages {
		key, err := marshalString(p.URL)
		if err != nil {
			return nil, err
		}
		value, err := marshalString(p.Text)
		if err != nil {
			return nil, err
		}
		b.WriteString("  ")
		b.Write(key)
		b.WriteString(": ")
		b.Write(value)
		if i < len(pages)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.Bytes(), nil
}

func marshalString(s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// FormatText renders the non-empty pages as a text dump, each framed by
// a URL line and separator rules.
func FormatText(pages []sitetext.Page) string {
	var b strings.Builder
	for _, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		b.WriteString("URL: ")
		b.WriteString(p.URL)
		b.WriteString("\n")
		b.WriteString(separator)
		b.WriteString("\n")
		b.WriteString(p.Text)
		b.WriteString("\n\n")
		b.WriteString(separator)
		b.WriteString("\n\n")
	}
	return b.String()
}

// FormatURLs renders one URL per line.
func FormatURLs(urls []string) string {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteString("\n")
	}
	return b.String()
}
