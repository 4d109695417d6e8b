package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/benbjohnson/cssselect"
	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/internal/config"
	"github.com/benbjohnson/cssselect/parser"
)

// errInvalid is returned when at least one input failed to parse.
var errInvalid = errors.New("invalid selectors")

// run parses every input and writes each tree to w in the configured format.
// Failures are logged and do not stop the remaining inputs.
func run(cfg config.Config, inputs []string, w io.Writer, logger *zap.Logger) error {
	p := parser.Config{MaxDepth: cfg.MaxDepth, Logger: logger}
	enc := newEncoder(w, cfg.Format)

	var failed int
	for _, s := range inputs {
		g, err := p.Parse(s)
		if err != nil {
			failed++
			fields := []zap.Field{zap.String("input", s), zap.Error(err)}
			var e *parser.Error
			if errors.As(err, &e) {
				fields = append(fields, zap.Int("offset", e.Pos.Offset))
			}
			logger.Error("cannot parse selector", fields...)
			continue
		}

		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("write %s: %w", cfg.Format, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Format, err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, failed, len(inputs))
	}
	return nil
}

// encoder writes a stream of trees in one output format.
type encoder interface {
	Encode(g *ast.SelectorGroup) error
	Close() error
}

func newEncoder(w io.Writer, format string) encoder {
	switch format {
	case config.FormatTree:
		return &treeEncoder{w: w}
	case config.FormatJSON:
		return jsonEncoder{json.NewEncoder(w)}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return yamlEncoder{enc}
	}
	return &textEncoder{w: w}
}

// textEncoder writes one canonical selectors group per line.
type textEncoder struct {
	w io.Writer
}

func (e *textEncoder) Encode(g *ast.SelectorGroup) error {
	_, err := fmt.Fprintln(e.w, g.String())
	return err
}

func (e *textEncoder) Close() error { return nil }

// treeEncoder writes the outline of each tree.
type treeEncoder struct {
	w io.Writer
	p cssselect.Printer
}

func (e *treeEncoder) Encode(g *ast.SelectorGroup) error {
	return e.p.Print(e.w, g)
}

func (e *treeEncoder) Close() error { return nil }

// yamlEncoder writes each tree as a separate YAML document.
type yamlEncoder struct {
	enc *yaml.Encoder
}

func (e yamlEncoder) Encode(g *ast.SelectorGroup) error { return e.enc.Encode(g) }

func (e yamlEncoder) Close() error { return e.enc.Close() }

// jsonEncoder writes one JSON object per line.
type jsonEncoder struct {
	*json.Encoder
}

func (e jsonEncoder) Encode(g *ast.SelectorGroup) error { return e.Encoder.Encode(g) }

func (jsonEncoder) Close() error { return nil }

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
