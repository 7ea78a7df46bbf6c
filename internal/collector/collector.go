package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Input is one eligible instrument file found under an exchange directory.
type Input struct {
	Exchange string
	Path     string
	Name     string
}

// Collector discovers eligible input files under a root of per-exchange directories.
type Collector struct {
	Root           string
	MaxPerExchange int
	Extension      string
	log            zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(root string, maxPerExchange int, extension string, log zerolog.Logger) *Collector {
	if extension == "" {
		extension = ".csv"
	}
	return &Collector{Root: root, MaxPerExchange: maxPerExchange, Extension: extension, log: log}
}

// Discover lists at most MaxPerExchange regular files with the configured
// extension from each direct subdirectory of Root. Deeper nesting is ignored.
// On an I/O error the files found so far are returned along with the error.
func (c *Collector) Discover() ([]Input, error) {
	entries, err := os.ReadDir(c.Root)
	if err != nil {
		return nil, fmt.Errorf("read root %s: %w", c.Root, err)
	}

	var inputs []Input
	for _, e := range entries {
		dir := filepath.Join(c.Root, e.Name())
		if !isDir(dir) {
			continue
		}
		files, err := c.exchangeFiles(dir)
		if err != nil {
			return inputs, err
		}
		for _, f := range files {
			inputs = append(inputs, Input{Exchange: e.Name(), Path: f, Name: filepath.Base(f)})
		}
		c.log.Debug().Str("exchange", e.Name()).Int("files", len(files)).Msg("exchange scanned")
	}
	return inputs, nil
}

func (c *Collector) exchangeFiles(dir string) ([]string, error) {
	if c.MaxPerExchange <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read exchange %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if len(files) >= c.MaxPerExchange {
			break
		}
		path := filepath.Join(dir, e.Name())
		if !strings.HasSuffix(path, c.Extension) || !isRegular(path) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// isDir and isRegular follow symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
