/*
Package main is the entry point for the CHATON chat server.

It is responsible for loading configuration from the config source argument,
initializing the global logging system, starting the TCP connection acceptor
and the optional WebSocket bridge, and gracefully handling operating system
interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chaton/internal/app/chat"
	"chaton/internal/configs"
	"chaton/internal/handler"
	"chaton/internal/pkg/logx"
)

func main() {
	// The only CLI surface is the config source argument.
	configPath := configs.DefaultConfigFile
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logx.InitGlobalLogger(cfg.Environment == "development", cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("http_port", cfg.HTTPPort).
		Str("log_file", cfg.LogFile).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := chat.NewServer()

	acceptor := chat.NewAcceptor(server)
	if err := acceptor.Listen(cfg.Addr()); err != nil {
		logx.Fatal(err, "Failed to bind chat listener")
	}

	go acceptor.Serve()
	logx.Info(fmt.Sprintf("CHATON Server listening on %s", cfg.Addr()))

	// Optional WebSocket bridge for browser front ends.
	var httpServer *http.Server
	if cfg.HTTPPort != 0 {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
			Handler:           handler.Router(server, cfg),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			logx.Info(fmt.Sprintf("WebSocket bridge listening on http://%s", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logx.Fatal(err, "WebSocket bridge failed to start")
			}
		}()
	}

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	if httpServer != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logx.Error(err, "WebSocket bridge forced to shutdown")
		}
	}

	acceptor.Shutdown()

	logx.Info("Server gracefully stopped.")
}
