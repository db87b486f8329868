package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"noteboard/internal/config"
	"noteboard/internal/service"
)

// ServeMCP runs a standalone MCP server on stdin/stdout with no GUI.
// The board lives for the duration of the process. Stdout belongs to the
// protocol, so logs go to a file.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logPath, err := cfg.ResolveLogFile()
	if err != nil {
		log.Fatalf("Failed to resolve log file: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		log.Fatalf("Failed to create log dir: %v", err)
	}
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	a, err := newApp(Options{
		Config: cfg,
		Logger: logger.NewFileLogger(logPath),
	}, service.NoopEmitter{})
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
	a.ctx = ctx
	a.startDropFolder()

	errc := make(chan error, 1)
	go func() {
		log.Println("[MCP] Starting standalone stdio server...")
		errc <- a.mcp.ServeStdio()
	}()

	select {
	case err = <-errc:
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	a.Shutdown(shutdownCtx)

	if err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
