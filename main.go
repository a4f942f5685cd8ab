package main

import (
	"log/slog"
	"os"

	"github.com/valyala/fasthttp"

	"projection-engine/internal/auth"
	"projection-engine/internal/careers"
	"projection-engine/internal/config"
	"projection-engine/internal/engine"
	"projection-engine/internal/handler"
	"projection-engine/internal/tax"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	table := tax.Default()
	if cfg.TaxTablePath != "" {
		table, err = tax.Load(cfg.TaxTablePath)
		if err != nil {
			log.Error("tax table load failed", "path", cfg.TaxTablePath, "error", err)
			os.Exit(1)
		}
	}

	e := engine.New(table, careers.New(cfg.CareerRegistryURL))
	h := handler.New(e, auth.NewVerifier(cfg.AuthSigningKey), log)

	log.Info("projection engine starting", "port", cfg.Port)
	if err := fasthttp.ListenAndServe(":"+cfg.Port, h.Handle); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
