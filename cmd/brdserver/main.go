package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"brdstudio/internal/config"
	"brdstudio/internal/server"
	"brdstudio/internal/storage"
	"brdstudio/internal/store"
	"brdstudio/internal/util"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := store.NewGormStore(cfg.DBPath)
	if err != nil {
		util.Fatal("failed to open store", "err", err, "path", cfg.DBPath)
	}

	finals, err := newFinalDocStore(cfg)
	if err != nil {
		util.Fatal("failed to init final document storage", "err", err)
	}

	httpServer := server.New(server.Config{
		Store:     dataStore,
		Finals:    finals,
		UploadDir: cfg.UploadDir,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("brd server listening", "addr", addr, "db", cfg.DBPath, "uploads", cfg.UploadDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

func newFinalDocStore(cfg config.Config) (storage.FinalDocStore, error) {
	if cfg.FinalDocBackend == "minio" {
		return storage.NewMinioStore(
			cfg.Minio.Endpoint,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.Bucket,
			cfg.Minio.UseSSL,
		)
	}
	return storage.NewDiskStore(cfg.UploadDir)
}
