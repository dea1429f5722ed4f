// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"net/url"

	"canvasctl/internal/issue"
)

var (
	// ErrTokenMissing is returned by RequireToken when no Canvas token is
	// configured anywhere.
	ErrTokenMissing = errors.New("canvas token missing")

	// ErrInvalidConfigFile is returned when a config file exists but cannot
	// be parsed.
	ErrInvalidConfigFile = errors.New("invalid config file")
)

type (
	// Config is the canvasctl tool configuration.
	Config struct {
		Canvas  CanvasConfig  `mapstructure:"canvas"`
		Course  CourseConfig  `mapstructure:"course"`
		Webwork WebworkConfig `mapstructure:"webwork"`
		UI      UIConfig      `mapstructure:"ui"`
	}

	// CanvasConfig points at the Canvas instance.
	CanvasConfig struct {
		// BaseURL is the Canvas instance root, e.g. "https://svsu.instructure.com".
		BaseURL string `mapstructure:"base_url"`

		// Token is the Canvas API access token. The CANVAS_TOKEN environment
		// variable takes precedence over the config file.
		Token string `mapstructure:"token"`
	}

	// CourseConfig holds course-file defaults.
	CourseConfig struct {
		// File is the course file name looked up in ancestor directories.
		File string `mapstructure:"file"`
	}

	// WebworkConfig points webwork assignments at a WeBWorK instance.
	WebworkConfig struct {
		BaseURL string `mapstructure:"base_url"`
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			BaseURL: "https://canvas.instructure.com",
		},
		Course: CourseConfig{
			File: "course.yaml",
		},
		Webwork: WebworkConfig{
			BaseURL: "https://webwork.svsu.edu/webwork2",
		},
	}
}

// Validate checks structural constraints on loaded values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Canvas.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(c.Canvas.BaseURL).
			WithSuggestion("Set canvas.base_url to a full URL like https://svsu.instructure.com").
			Wrap(err).
			BuildError()
	}
	return nil
}

// RequireToken returns an error when no Canvas token is configured. Commands
// that talk to the API call this; dry runs do not.
func (c *Config) RequireToken() error {
	if c.Canvas.Token != "" {
		return nil
	}
	return issue.NewErrorContext().
		WithOperation("authenticate with Canvas").
		WithSuggestion("Set the CANVAS_TOKEN environment variable").
		WithSuggestion("Or add canvas.token to the canvasctl config file").
		Wrap(ErrTokenMissing).
		BuildError()
}
