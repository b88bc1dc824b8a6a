package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/typicalx11app/internal/cli"
	"github.com/1broseidon/typicalx11app/internal/config"
	"github.com/1broseidon/typicalx11app/internal/session"
	"github.com/1broseidon/typicalx11app/internal/x11"
)

// exitPanic is reported when the program dies on a runtime panic, such as
// running out of memory while building a request.
const exitPanic = -1

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, x11.Connector{}))
}

// run executes the program for argv (program name first) and returns the exit
// code.
func run(argv []string, stdout, stderr io.Writer, connector session.Connector) (code int) {
	log.SetFlags(0)
	log.SetPrefix(cli.CommandName + ": ")
	log.SetOutput(stderr)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("fatal: %v", r)
			code = exitPanic
		}
	}()

	res, err := cli.Parse(argv[1:], stdout)
	if err != nil {
		log.Print(err)
		return res.ExitCode
	}
	if !res.Proceed {
		return res.ExitCode
	}

	loaded, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := loaded.Config

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	if loaded.File != "" {
		logger.Debug("configuration loaded", "file", loaded.File)
	}
	logger.Debug("command line", "option", res.Option, "files", res.Files)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := session.New(cfg, connector, session.Options{
		Out:     stdout,
		Logger:  logger,
		Command: argv,
	})
	defer s.Close()

	if err := s.Startup(); err != nil {
		switch {
		case errors.Is(err, session.ErrConnection):
			log.Printf("ERROR: cannot open display %q: %v", displayName(cfg.Display), err)
		default:
			log.Printf("ERROR: %v", err)
		}
		return 1
	}

	return s.Run(ctx)
}

func displayName(name string) string {
	if name != "" {
		return name
	}
	if env := os.Getenv("DISPLAY"); env != "" {
		return env
	}
	return "$DISPLAY unset"
}
