// Package convert performs a single conversion between a Postman collection and a
// JMeter test plan: load, parse, render and write.
//
// Errors from parsing are returned as is so callers can inspect them with [errors.As]
// against the error types in package tree.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/pmx/internal/collection"
	"go.followtheprocess.codes/pmx/internal/testplan"
	"go.followtheprocess.codes/pmx/internal/tree"
)

const (
	defaultDirPerms  = 0o755
	defaultFilePerms = 0o644
)

// Options configure a conversion.
type Options struct {
	// Logger receives warnings from the renderers, may be nil
	Logger *log.Logger

	// IDs supplies collection identifiers, random if nil
	IDs collection.IDSource

	// HostVariable is the JMeter variable prefixed to sampler paths
	HostVariable string

	// Strict makes unsupported features an error
	Strict bool
}

// Result is the outcome of a successful [Run].
type Result struct {
	// Tree is the parsed input
	Tree *tree.Group

	// Content is the rendered output, a string for a test plan or a
	// [collection.Document] for a collection
	Content any
}

// Run parses src in the source format of direction and renders it in the target format.
//
// Each call uses its own identifier counter.
func Run(src []byte, direction Direction, options Options) (Result, error) {
	counter := tree.NewCounter()

	switch direction {
	case ToTestPlan:
		root, err := collection.NewParser(counter, options.Strict).Parse(src)
		if err != nil {
			return Result{}, err
		}

		plan, err := testplan.NewRenderer(options.HostVariable).Render(root)
		if err != nil {
			return Result{}, err
		}

		return Result{Tree: root, Content: plan}, nil
	case ToCollection:
		root, err := testplan.NewParser(counter).Parse(src)
		if err != nil {
			return Result{}, err
		}

		document := collection.NewRenderer(options.Logger, options.IDs).Render(root)

		return Result{Tree: root, Content: document}, nil
	default:
		return Result{}, &tree.UnsupportedFeatureError{Feature: direction.String()}
	}
}

// Load reads the file at path, returning a [tree.NotFoundError] if it does not exist.
func Load(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &tree.NotFoundError{Path: path, Err: err}
		}

		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	return src, nil
}

// Target returns the directory and file name the output of converting source should
// be written to.
//
// An empty output puts the file next to source. An output ending in the target extension
// is a file path, anything else is a directory. The file name is source's with the
// extension replaced.
func Target(source, output string, direction Direction) (dir, name string) {
	ext := direction.TargetExt()
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ext

	switch {
	case output == "":
		return filepath.Dir(source), base
	case strings.EqualFold(filepath.Ext(output), ext):
		return filepath.Dir(output), filepath.Base(output)
	default:
		return output, base
	}
}

// Write writes content to name in dir, creating dir if needed and replacing any
// existing file.
//
// Strings and byte slices are written as is, anything else as four space indented
// JSON, falling back to its default string form if it cannot be encoded.
func Write(dir, name string, content any) error {
	if err := os.MkdirAll(dir, defaultDirPerms); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}

	var data []byte

	switch content := content.(type) {
	case string:
		data = []byte(content)
	case []byte:
		data = content
	default:
		buf := &bytes.Buffer{}

		encoder := json.NewEncoder(buf)
		encoder.SetIndent("", "    ")
		encoder.SetEscapeHTML(false)

		if err := encoder.Encode(content); err != nil {
			data = []byte(fmt.Sprint(content))
		} else {
			data = buf.Bytes()
		}
	}

	path := filepath.Join(dir, name)

	// Replace any existing file rather than truncating it
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not replace %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, defaultFilePerms); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}

	return nil
}

// File converts the file at source, writing the result according to [Target], and
// returns the path it was written to.
//
// If direction is [Unknown] it is detected from source's extension. Nothing is
// written unless the conversion succeeds.
func File(source, output string, direction Direction, options Options) (string, error) {
	if direction == Unknown {
		detected, err := Detect(source)
		if err != nil {
			return "", err
		}

		direction = detected
	}

	src, err := Load(source)
	if err != nil {
		return "", err
	}

	result, err := Run(src, direction, options)
	if err != nil {
		return "", err
	}

	dir, name := Target(source, output, direction)
	if err := Write(dir, name, result.Content); err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}
