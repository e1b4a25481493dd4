package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"swipemenu/internal/config"
	"swipemenu/internal/demo"
	"swipemenu/internal/trace"
)

const version = "0.1.0"

// options holds the parsed CLI flags. Empty values leave the config file's
// settings in place.
type options struct {
	configPath string
	pages      string
	index      int
	logFile    string
	logLevel   string
	exporter   string
	traceFile  string
	init       bool
	version    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("swipemenu", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/swipemenu/config.yaml)")
	fs.StringVar(&o.pages, "pages", "", "comma-separated page titles")
	fs.IntVar(&o.index, "index", -1, "initial page index")
	fs.StringVar(&o.logFile, "log-file", "", "write structured logs to this file")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&o.exporter, "trace", "", "span exporter: none, stdout, otlp")
	fs.StringVar(&o.traceFile, "trace-file", "", "file for the stdout span exporter")
	fs.BoolVar(&o.init, "init", false, "write a default config file and exit")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: swipemenu [flags]\n\n")
		fmt.Fprintf(fs.Output(), "A tab strip over swipeable pages.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// apply overlays flag values onto cfg.
func (o options) apply(cfg *config.Config) {
	if o.pages != "" {
		var pages []string
		for _, p := range strings.Split(o.pages, ",") {
			if p = strings.TrimSpace(p); p != "" {
				pages = append(pages, p)
			}
		}
		cfg.Demo.Pages = pages
		cfg.Demo.InitialIndex = 0
	}
	if o.index >= 0 {
		cfg.Demo.InitialIndex = o.index
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.exporter != "" {
		cfg.Trace.Exporter = o.exporter
	}
	if o.traceFile != "" {
		cfg.Trace.File = o.traceFile
	}
}

func writeTemplate(path string) error {
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func run(o options) (err error) {
	if o.init {
		return writeTemplate(o.configPath)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logCloser, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()
	tp, err := trace.Setup(ctx, cfg.Trace)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err = errors.Join(err, tp.Shutdown(shutdownCtx))
	}()

	logger.Info("starting", "version", version, "pages", len(cfg.Demo.Pages), "tracing", tp.Enabled())
	app := demo.New(cfg, logger, tp.Tracer())
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if o.version {
		fmt.Println("swipemenu", version)
		return
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "swipemenu: %v\n", err)
		os.Exit(1)
	}
}
