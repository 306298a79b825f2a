package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/portfolio-console/console/config"
	"github.com/portfolio-console/console/internal/bootstrap"
	"github.com/portfolio-console/console/internal/platform/logx"
	"github.com/portfolio-console/console/internal/portfolio/gateway"
	"github.com/portfolio-console/console/internal/portfolio/store"
)

const serviceName = "portfolio-console"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logx.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := gateway.NewClient(cfg.Portfolio.APIURL,
		gateway.WithTimeout(cfg.Portfolio.HTTPTimeout),
		gateway.WithMetrics(gateway.NewMetrics(reg)),
	)
	st := store.New(client,
		store.WithMessageTTL(cfg.Portfolio.MessageTTL),
		store.WithMaxUploadBytes(cfg.Portfolio.MaxUploadBytes),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// a failed initial load is not fatal; the collections just start empty
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Portfolio.HTTPTimeout)
	if err := st.Load(loadCtx); err != nil {
		log.Printf("[warn] initial load: %v", err)
	}
	cancel()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		UpstreamURL:    cfg.Portfolio.APIURL,
		Store:          st,
		Gatherer:       reg,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadBytes: cfg.Portfolio.MaxUploadBytes,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s %s listening on :%s (api=%s)", serviceName, cfg.App.Version, cfg.Server.Port, cfg.Portfolio.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] shutdown: %v", err)
	}
}
