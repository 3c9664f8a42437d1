package fs

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/sitetext"
)

// ReadURLs reads a newline-delimited URL list. Surrounding whitespace is
// trimmed and blank lines are skipped.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sitetext.Errorf(sitetext.ENOTFOUND, "URL file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
