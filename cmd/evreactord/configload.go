package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evreactor/evreactor"
)

// loadBindings assembles the full binding set for a non-monitor run: the
// inline -e text first (if given), then every file matched by -c (or the
// default glob if neither -c nor -e was given), in the same order the
// reference CLI's evev() builds its linked list.
func loadBindings(cfg *config) ([]*evreactor.Binding, error) {
	var all []*evreactor.Binding

	if cfg.cfgText != "" {
		b, err := evreactor.Parse(cfg.cfgText)
		if err != nil {
			return nil, fmt.Errorf("<cmdline>: %w", err)
		}
		all = append(all, b...)
	}

	glob := cfg.cfgGlob
	if glob == "" && cfg.cfgText == "" {
		glob = defaultConfigGlob
	}
	if glob != "" {
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, fmt.Errorf("config glob %q: %w", glob, err)
		}
		for _, path := range matches {
			text, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			b, err := evreactor.Parse(string(text))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			all = append(all, b...)
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no configs loaded; exiting")
	}
	return all, nil
}
