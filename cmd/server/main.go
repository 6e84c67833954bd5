// Package main - Entry point for the cart-transform function host
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"cart-transform/adapters/metafield"
	"cart-transform/api"
	"cart-transform/internal/config"
	"cart-transform/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file (JSON or HCL)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	var store *metafield.Store
	if cfg.Metafields.SeedFile != "" {
		loaded, err := metafield.LoadSeed(cfg.Metafields.SeedFile,
			cfg.Metafields.BundleNamespace, cfg.Metafields.BundleKey)
		if err != nil {
			logging.Error("failed to load metafield seed", zap.Error(err))
			os.Exit(1)
		}
		store = loaded
		logging.Info("metafield seed loaded",
			zap.String("file", cfg.Metafields.SeedFile),
			zap.Int("owners", len(store.Owners())))
	}

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	server := api.NewServer(version, cfg, store)
	logging.Info("function host listening", zap.String("addr", listenAddr))
	if err := server.ListenAndServe(listenAddr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
