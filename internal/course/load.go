// SPDX-License-Identifier: MPL-2.0

package course

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"canvasctl/internal/issue"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the course file looked up when none is specified.
const DefaultFileName = "course.yaml"

// ErrNotFound is returned by Find when no course file exists in the working
// directory or any ancestor up to the search root.
var ErrNotFound = errors.New("course file not found")

// maxIncludeDepth bounds !include recursion so include cycles fail instead
// of hanging.
const maxIncludeDepth = 10

// Load reads, include-resolves, decodes, and validates a course file.
func Load(path string) (*Config, error) {
	node, err := loadNode(path, 0)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := node.Decode(&cfg); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("decode course file").
			WithResource(path).
			WithSuggestion("Check that week items have a valid 'kind' field").
			WithSuggestion("Run 'canvasctl validate' for a structural report").
			Wrap(err).
			BuildError()
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate course file").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

// loadNode parses a YAML file and resolves !include directives into a single
// merged document before any item-kind decoding happens. Include paths are
// relative to the including file's directory and resolve recursively.
func loadNode(path string, depth int) (*yaml.Node, error) {
	if depth > maxIncludeDepth {
		return nil, fmt.Errorf("course: include depth exceeds %d at %s (include cycle?)", maxIncludeDepth, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read course file").
			WithResource(path).
			WithSuggestion("Check the path and file permissions").
			Wrap(err).
			BuildError()
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse course file").
			WithResource(path).
			WithSuggestion("Check the YAML syntax").
			Wrap(err).
			BuildError()
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}

	// A document may itself be a single !include directive.
	if root.Tag == "!include" {
		if root.Kind != yaml.ScalarNode || root.Value == "" {
			return nil, fmt.Errorf("course: !include needs a file path (%s line %d)", path, root.Line)
		}
		return loadNode(filepath.Join(filepath.Dir(path), root.Value), depth+1)
	}

	if err := resolveIncludes(root, filepath.Dir(path), depth); err != nil {
		return nil, err
	}
	return root, nil
}

// resolveIncludes walks the node tree and splices in the contents of files
// referenced by !include-tagged scalars.
func resolveIncludes(node *yaml.Node, baseDir string, depth int) error {
	for i, child := range node.Content {
		if child.Tag == "!include" {
			if child.Kind != yaml.ScalarNode || child.Value == "" {
				return fmt.Errorf("course: !include needs a file path (line %d)", child.Line)
			}
			included, err := loadNode(filepath.Join(baseDir, child.Value), depth+1)
			if err != nil {
				return err
			}
			node.Content[i] = included
			continue
		}
		if err := resolveIncludes(child, baseDir, depth); err != nil {
			return err
		}
	}
	return nil
}

// Find searches for the named course file in the working directory and its
// ancestors, stopping at root (the user's home directory when root is
// empty). A miss is a fatal not-found error.
func Find(name, root string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("course: resolving home directory: %w", err)
		}
		root = home
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("course: resolving root %s: %w", root, err)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("course: resolving working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		if dir == rootAbs {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", issue.NewErrorContext().
		WithOperation("find course file").
		WithResource(name).
		WithSuggestion("Run canvasctl from inside a course directory").
		WithSuggestion("Point at a specific file with --course").
		Wrap(ErrNotFound).
		BuildError()
}
