package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sentinel-backend/internal/config"
	httpdelivery "sentinel-backend/internal/delivery/http"
	"sentinel-backend/internal/delivery/websocket"
	"sentinel-backend/internal/domain"
	"sentinel-backend/internal/infrastructure/binance"
	"sentinel-backend/internal/infrastructure/db"
	"sentinel-backend/internal/infrastructure/discord"
	"sentinel-backend/internal/infrastructure/fcm"
	"sentinel-backend/internal/infrastructure/indicators"
	"sentinel-backend/internal/repository"
	"sentinel-backend/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Market data
	provider := binance.NewClient(cfg.BinanceBaseURL)

	params := indicators.Params{
		EMAFast:    cfg.EMAFast,
		EMASlow:    cfg.EMASlow,
		EMATrend:   cfg.EMATrend,
		MACDFast:   cfg.MACDFast,
		MACDSlow:   cfg.MACDSlow,
		MACDSignal: cfg.MACDSignal,
		RSIPeriod:  cfg.RSIPeriod,
		STPeriod:   cfg.STPeriod,
		STMult:     cfg.STMult,
	}
	snapshots := usecase.NewSnapshotBuilder(provider, params, cfg.MinBars, cfg.SnapshotLimit)

	// Repositories
	results := repository.NewInMemoryResultRepository()
	tokens := repository.NewTokenRepository()

	stateRepo, err := repository.NewFileStateRepository(cfg.StatePath)
	if err != nil {
		log.Fatalf("alert state: %v", err)
	}

	var history domain.SignalHistory
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfigFromEnv())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("database: %v", err)
		}
		history = repository.NewPostgresSignalRepository(pool)
		log.Println("signal history: postgres enabled")
	} else {
		log.Println("DATABASE_URL not set, signal history disabled")
	}

	// Notification sinks
	fcmClient, err := fcm.NewClient(ctx)
	if err != nil {
		log.Fatalf("fcm: %v", err)
	}

	webhook := discord.NewWebhook(cfg.DiscordWebhookURL, cfg.DiscordPremiumWebhook, cfg.PremiumConfidence)
	var sink usecase.AlertSink
	if webhook.IsEnabled() {
		sink = webhook
	} else {
		log.Println("no Discord webhook configured, text alerts disabled")
	}

	gate := usecase.NewAlertGate(stateRepo, cfg.MessageCooldown, nil)
	dispatcher := usecase.NewDispatcher(sink, fcmClient, tokens)

	sentinel := usecase.NewSentinel(cfg, provider, snapshots, results, history, gate, dispatcher, nil)
	go sentinel.Run(ctx)

	// Delivery
	wsHandler := websocket.NewHandler(results)
	tokenHandler := httpdelivery.NewTokenHandler(tokens)
	signalHandler := httpdelivery.NewSignalHandler(results, history)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.HandleFunc("/results", signalHandler.HandleGetResults)
	mux.HandleFunc("/signals", signalHandler.HandleGetSignals)
	mux.HandleFunc("/tokens/register", tokenHandler.HandleRegisterToken)
	mux.HandleFunc("/tokens/unregister", tokenHandler.HandleUnregisterToken)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	cancel()
	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
