package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/config"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/handler"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/router"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/service"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/ws"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	var kv kvstore.Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := kvstore.NewPostgres(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pg.Close()
		kv = pg
		log.Info().Msg("using postgres store")
	} else {
		kv = kvstore.NewMemory()
		log.Warn().Msg("DATABASE_URL not set, using in-memory store; data is lost on restart")
	}

	orders := store.NewOrderStore(kv)
	menu := store.NewMenuStore(kv)
	users := store.NewUserStore(kv)
	settings := store.NewSettingsStore(kv)
	orderSvc := service.NewOrderService(orders, menu, settings)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(router.Deps{
		Auth:      handler.NewAuthHandler(users, cfg.JWTSecret),
		Menu:      handler.NewMenuHandler(menu),
		Users:     handler.NewUserHandler(users),
		Settings:  handler.NewSettingsHandler(settings),
		Orders:    handler.NewOrderHandler(orderSvc, orders, settings, hub),
		Reports:   handler.NewReportsHandler(orders, settings),
		Hub:       hub,
		JWTSecret: cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
