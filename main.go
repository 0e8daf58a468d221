package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"claimsdesk/app/client/ollama"
	"claimsdesk/app/config"
	"claimsdesk/app/service/dialogue"
	"claimsdesk/app/service/relay"
	"claimsdesk/app/service/store"
	"claimsdesk/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, ollama.NewClient)
	do.Provide(di, store.New)
	do.Provide(di, dialogue.New)
	do.Provide(di, relay.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*relay.Service](di).Run(appCtx); err != nil {
		log.Errorf("relay server stopped: %v", err)
	}
}
