// Package yaml loads sitetext filter bundles from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/sitetext"
	"gopkg.in/yaml.v3"
)

// filtersFile is the on-disk shape of a filter bundle.
type filtersFile struct {
	Noise              []string `yaml:"noise"`
	Generic            []string `yaml:"generic"`
	Site               []string `yaml:"site"`
	Content            []string `yaml:"content"`
	NavPhrases         []string `yaml:"nav_phrases"`
	BoilerplatePhrases []string `yaml:"boilerplate_phrases"`
	HeadingStopWords   []string `yaml:"heading_stop_words"`
	ParagraphStopWords []string `yaml:"paragraph_stop_words"`
}

// LoadFilters reads a filter bundle from path. Lists present in the file
// replace the corresponding default list; omitted lists keep their
// defaults.
func LoadFilters(path string) (sitetext.Filters, error) {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return sitetext.Filters{}, sitetext.Errorf(sitetext.ENOTFOUND, "filters file not found: %s", path)
	} else if err != nil {
		return sitetext.Filters{}, fmt.Errorf("open filters: %w", err)
	}
	defer fh.Close()

	return DecodeFilters(fh)
}

// DecodeFilters is like LoadFilters but reads from r. Unknown keys are
// rejected.
func DecodeFilters(r io.Reader) (sitetext.Filters, error) {
	var file filtersFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return sitetext.Filters{}, sitetext.Errorf(sitetext.EINVALID, "decode filters: %v", err)
	}

	return sitetext.DefaultFilters().Merge(sitetext.Filters{
		Noise:              file.Noise,
		Generic:            file.Generic,
		Site:               file.Site,
		Content:            file.Content,
		NavPhrases:         file.NavPhrases,
		BoilerplatePhrases: file.BoilerplatePhrases,
		HeadingStopWords:   file.HeadingStopWords,
		ParagraphStopWords: file.ParagraphStopWords,
	}), nil
}
