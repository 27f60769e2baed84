package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SmartWorth/internal/api"
	"SmartWorth/internal/calculator"
	"SmartWorth/internal/collector"
	"SmartWorth/internal/config"
	"SmartWorth/internal/notifier"
	"SmartWorth/internal/recorder"
	"SmartWorth/internal/scheduler"
	"SmartWorth/internal/service"
	"SmartWorth/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	cfgPath := flag.String("config", defaultCfg, "path to the YAML config file")
	analyzeName := flag.String("analyze", "", "analyze one product, print the report and exit")
	similarName := flag.String("similar", "", "list stored products similar to the given name and exit")
	mock := flag.Bool("mock", false, "use canned listings instead of live sources")
	flag.Parse()

	log.Println("[INFO] SmartWorth starting...")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	col := buildCollector(cfg, *mock)

	rec := openRecorder(cfg)
	defer rec.Close()

	svc := service.New(col, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot modes
	if *analyzeName != "" {
		res, err := svc.Analyze(ctx, *analyzeName)
		if err != nil {
			log.Fatalf("[FATAL] analyze: %v", err)
		}
		fmt.Println(notifier.FormatAnalysisText(res))
		return
	}
	if *similarName != "" {
		matches, err := svc.Similar(*similarName, cfg.Analysis.SimilarLimit)
		if err != nil {
			log.Fatalf("[FATAL] similar: %v", err)
		}
		for _, m := range matches {
			fmt.Printf("%.2f\t%s\n", m.Score, m.Product.Name)
		}
		return
	}

	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, cfg.Watchlist.Products)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}

	var tn *notifier.TelegramNotifier
	var n scheduler.Notifier
	if cfg.Telegram.Enabled {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err != nil {
			log.Printf("[WARN] init telegram notifier failed, reports will only be logged: %v", err)
		} else {
			n = tn
		}
	}

	sched := scheduler.NewScheduler(ctx, svc, wl, n, cfg.Analysis.SimilarLimit)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	var srvDone chan struct{}
	if cfg.Server.Enabled {
		handler := api.NewRouter(svc, wl, api.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimit:      cfg.Server.RateLimit,
			SimilarLimit:   cfg.Analysis.SimilarLimit,
		})
		srv := api.NewServer(cfg.Server.Addr, handler)
		srvDone = make(chan struct{})
		go func() {
			defer close(srvDone)
			if err := srv.Run(ctx); err != nil {
				log.Printf("[ERROR] HTTP API: %v", err)
			}
		}()
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] SmartWorth is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	if srvDone != nil {
		<-srvDone
	}
	log.Println("[INFO] SmartWorth stopped")
}

func buildCollector(cfg *config.Config, mock bool) *collector.Collector {
	normalizer := calculator.NewNormalizer(cfg.Analysis.USDRate)

	var fetchers []collector.Fetcher
	if mock {
		fetchers = append(fetchers,
			&collector.MockFetcher{
				Source:      "google",
				RawPrices:   []string{"25.000 TL", "$799", "26.499,90 TL"},
				Description: "New model 2024 smartphone with warranty, limited stock",
			},
			&collector.MockFetcher{
				Source:    "trendyol",
				RawPrices: []string{"24.750 TL", "25.900 TL"},
			},
		)
	} else {
		if cfg.Sources.Google.IsEnabled() {
			fetchers = append(fetchers, collector.NewGoogleFetcher(
				cfg.Sources.Google.BaseURL, cfg.Sources.Google.MaxResults, cfg.Sources.ChromeBin, cfg.Proxy))
		}
		if cfg.Sources.Trendyol.IsEnabled() {
			fetchers = append(fetchers, collector.NewTrendyolFetcher(
				cfg.Sources.Trendyol.BaseURL, cfg.Sources.Trendyol.MaxResults, cfg.Proxy))
		}
	}
	for _, f := range fetchers {
		log.Printf("[INFO] data source: %s", f.Name())
	}
	return collector.NewCollector(normalizer, cfg.Sources.Timeout, fetchers...)
}

func openRecorder(cfg *config.Config) recorder.Recorder {
	var (
		rec recorder.Recorder
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		rec, err = recorder.NewPostgresRecorder(cfg.Database.PostgresDSN)
	default:
		rec, err = recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Printf("[WARN] init %s recorder failed, using noop: %v", cfg.Database.Driver, err)
		return recorder.NewNoopRecorder()
	}
	log.Printf("[INFO] recording analyses to %s", cfg.Database.Driver)
	return rec
}
