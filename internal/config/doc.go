// SPDX-License-Identifier: MPL-2.0

// Package config loads the canvasctl tool configuration: the Canvas API
// endpoint and token, the default course file, and UI preferences. The
// config file is optional YAML under the platform config directory; a
// missing file falls back to defaults, and CANVAS_TOKEN overrides the
// token from the environment.
package config
