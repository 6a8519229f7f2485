package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/internal/logging"
	"github.com/goliatone/go-formlayout/internal/prompt"
	"github.com/goliatone/go-formlayout/pkg/backends/terminal"
	"github.com/goliatone/go-formlayout/pkg/form"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, interactive()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "formlayout: %v\n", err)
		os.Exit(1)
	}
}

func interactive() prompt.Driver {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	return prompt.NewSurveyDriver()
}

type cliFlags struct {
	layout    string
	data      string
	operation string
	backend   string
	format    string
	config    string
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("formlayout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.layout, "layout", "", "layout document (JSON or YAML), or an OpenAPI document with -operation")
	fs.StringVar(&f.data, "data", "", "form data file (JSON or YAML)")
	fs.StringVar(&f.operation, "operation", "", "read the layout from this operation's x-formlayout extension")
	fs.StringVar(&f.backend, "backend", "", "widget backend (terminal, jsonl)")
	fs.StringVar(&f.format, "format", "", "output format (text, json)")
	fs.StringVar(&f.config, "config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	if strings.TrimSpace(f.layout) == "" {
		fs.Usage()
		return cliFlags{}, errors.New("-layout is required")
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver prompt.Driver) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	if flags.backend != "" {
		cfg.Backend = strings.ToLower(flags.backend)
	}
	if flags.format != "" {
		cfg.Format = strings.ToLower(flags.format)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tree, err := loadLayout(ctx, flags.layout, flags.operation)
	if err != nil {
		return err
	}
	data, err := loadData(flags.data)
	if err != nil {
		return err
	}

	// Widgets paint to stdout for text output; json output keeps stdout for
	// the descriptor tree.
	paintTo := stdout
	if cfg.Format == config.FormatJSON {
		paintTo = stderr
	}
	registry, sink, err := newRegistry(paintTo, cfg)
	if err != nil {
		return err
	}

	backend, err := chooseBackend(ctx, cfg.Backend, registry, driver)
	if err != nil {
		return err
	}
	if err := registry.Activate(backend); err != nil {
		return err
	}
	logger.Debug("backend activated", zap.String("backend", backend))

	f := form.New(tree, data)
	engine := render.New(f, registry, render.WithLogger(logger))
	rendered, err := engine.Walk(ctx, f.Layout())
	if err != nil {
		return err
	}
	if err := sink.Err(); err != nil {
		logger.Error("jsonl backend failed", zap.Error(err))
		return err
	}

	if cfg.Format == config.FormatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rendered)
	}
	return nil
}

func newRegistry(w io.Writer, cfg config.Config) (*widgets.Registry, *jsonlBackend, error) {
	registry := widgets.NewRegistry()
	painter := terminal.New(w, terminal.WithTheme(cfg.ThemeManifest()))
	if err := painter.Register(registry); err != nil {
		return nil, nil, err
	}
	sink := newJSONLBackend(w)
	if err := registry.Register(jsonlName, sink.constructor()); err != nil {
		return nil, nil, err
	}
	return registry, sink, nil
}

func chooseBackend(ctx context.Context, configured string, registry *widgets.Registry, driver prompt.Driver) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if driver == nil {
		return terminal.Name, nil
	}
	return prompt.ChooseBackend(ctx, driver, registry.List(), terminal.Name)
}

func loadLayout(ctx context.Context, path, operation string) ([]*layout.Node, error) {
	if operation == "" {
		return layout.LoadFile(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return layout.FromOpenAPI(ctx, raw, operation)
}

func loadData(path string) (any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out any
	if json.Valid(raw) {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return out, nil
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
