package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PulseBoard/internal/alert"
	"PulseBoard/internal/collector"
	"PulseBoard/internal/config"
	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/notifier"
	"PulseBoard/internal/scheduler"
)

func main() {
	port := flag.Int("port", 0, "HTTP port for the dashboard (overrides server.port)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PulseBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	th := alert.Thresholds{
		StockChangePct:    cfg.Alerts.StockChangePct,
		PrecipProbability: cfg.Alerts.PrecipProbability,
	}
	if th.Mode, err = alert.ParseMode(cfg.Alerts.StockMode); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	// Init fetchers
	breaker := collector.Breaker{Failures: cfg.DataSource.BreakerFailures, Cooldown: cfg.DataSource.BreakerCooldown}
	yahoo := collector.NewYahooFetcher(cfg.DataSource.YahooBaseURL, cfg.Proxy, cfg.DataSource.Timeout).WithBreaker(breaker)
	for symbol, ticker := range cfg.DataSource.SymbolMap {
		yahoo.SymbolMap[symbol] = ticker
	}
	market := collector.NewRateLimitedMarketFetcher(yahoo, cfg.DataSource.RateLimit, 1)
	weather := collector.NewOpenMeteoFetcher(cfg.Weather.BaseURL, cfg.Weather.Timezone, cfg.Proxy, cfg.DataSource.Timeout).WithBreaker(breaker)
	log.Printf("[INFO] data sources: %s, %s", market.Name(), weather.Name())

	col := collector.NewCollector(market, weather, cfg.DataSource.Symbols, cfg.DataSource.LookbackDays,
		cfg.Weather.Latitude, cfg.Weather.Longitude, cfg.DataSource.Timeout)

	// Init sender
	var sender notifier.Sender
	if cfg.Mail.Enabled {
		sender = notifier.NewMailNotifier(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Address, cfg.Mail.Password,
			cfg.Mail.Recipient, cfg.Mail.Timeout)
		log.Printf("[INFO] alerts mailed to %s via %s:%d", cfg.Mail.Recipient, cfg.Mail.Host, cfg.Mail.Port)
	} else {
		sender = notifier.NewLogNotifier()
		log.Println("[WARN] EMAIL_ADDRESS/EMAIL_PASSWORD not set, alerts are only logged")
	}

	store := dashboard.NewStore()
	srv := dashboard.NewServer(store, fmt.Sprintf(":%d", cfg.Server.Port), cfg.Schedule.Interval)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycle := scheduler.NewCycle(col, th, sender, store)
	sched := scheduler.NewScheduler(ctx, cycle, cfg.Schedule.Interval)
	if err := sched.Register(); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Start() }()

	if *cfg.Schedule.RunOnStart {
		sched.RunNowAsync()
	}

	log.Printf("[INFO] PulseBoard is running on :%d, refreshing every %v. Press Ctrl+C to stop.",
		cfg.Server.Port, cfg.Schedule.Interval)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-srvErr:
		if err != nil {
			log.Printf("[ERROR] dashboard server: %v", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] dashboard shutdown: %v", err)
	}
	// Let a cycle in flight finish its fetches and mails before cancelling.
	sched.Stop()
	cancel()
	log.Println("[INFO] PulseBoard stopped")
}
