// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package config loads the small set of settings the HTTP server and CLI
// need at startup: where to listen, how long to wait on outbound
// requests, what User-Agent to advertise, and which Wikibase search
// endpoint to query.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wikitools/auth2wd/internal/auth2wd/wbsearch"
)

// Config is the top-level settings document, loaded from a single YAML
// file (--config on the CLI, AUTH2WD_CONFIG in the environment, or the
// package defaults below if neither is set).
type Config struct {
	ListenAddress  string        `yaml:"listen_address"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	UserAgent      string        `yaml:"user_agent"`
	WikibaseSearch string        `yaml:"wikibase_search_url"`
}

// Default returns the settings the system runs with absent a config file.
func Default() Config {
	return Config{
		ListenAddress:  ":8080",
		HTTPTimeout:    60 * time.Second,
		UserAgent:      "Mozilla/5.0 (compatible; auth2wd/0.1; +https://github.com/wikitools/auth2wd)",
		WikibaseSearch: "https://www.wikidata.org/w/api.php",
	}
}

// Load reads a YAML config file at path, overlaying it onto Default().
// A missing path is not an error: Load just returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(body, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply pushes cfg's settings into the package-level state the rest of
// auth2wd reads (wbsearch's base URL today; httpclient's timeout and
// User-Agent are fixed per spec.md §4.4's "single shared client" design
// and are not reconfigured at runtime).
func (c Config) Apply() {
	wbsearch.BaseURL = c.WikibaseSearch
}
