// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for canvasctl.
//
// This package implements the Cobra command hierarchy: the root command,
// posting and updating weekly modules, module management, file upload,
// announcements, and course file validation.
package cmd
