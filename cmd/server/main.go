package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/server"
	"github.com/teatak/tinyseg/util"
)

func main() {
	defaults := server.DefaultConfig()

	var (
		addr     string
		cfg      server.Config
		cacheMB  int
		cacheTTL int
	)
	flag.StringVar(&addr, "addr", util.GetEnv("TINYSEG_ADDR", ":8080"), "listen address")
	flag.StringVar(&cfg.ModelPath, "model", util.GetEnv("TINYSEG_MODEL", defaults.ModelPath), "model file (.txt or .json)")
	flag.IntVar(&cacheMB, "cache-mb", util.GetEnvInt("TINYSEG_CACHE_MB", defaults.CacheBytes>>20), "result cache size in MiB, 0 disables")
	flag.IntVar(&cacheTTL, "cache-ttl", util.GetEnvInt("TINYSEG_CACHE_TTL", defaults.CacheTTLSeconds), "result cache expiry in seconds, 0 never expires")
	flag.IntVar(&cfg.MaxTextBytes, "max-text-bytes", util.GetEnvInt("TINYSEG_MAX_TEXT_BYTES", defaults.MaxTextBytes), "largest text accepted per request, 0 is unlimited")
	flag.StringVar(&cfg.CorpusPath, "corpus", util.GetEnv("TINYSEG_CORPUS", ""), "segmented corpus that /feedback appends to and retrains from, empty disables /feedback")
	flag.IntVar(&cfg.Train.Iterations, "train-iter", util.GetEnvInt("TINYSEG_TRAIN_ITER", defaults.Train.Iterations), "training iterations per retrain")
	flag.IntVar(&cfg.Train.Bias, "train-bias", util.GetEnvInt("TINYSEG_TRAIN_BIAS", defaults.Train.Bias), "initial bias per retrain")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg.CacheBytes = cacheMB << 20
	cfg.CacheTTLSeconds = cacheTTL

	srv, err := server.New(cfg)
	if err != nil {
		klog.Fatalf("initial load failed: %v", err)
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP reloads the model, SIGINT and SIGTERM shut down.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range signals {
			if sig == syscall.SIGHUP {
				if err := srv.Reload(); err != nil {
					klog.ErrorS(err, "reload failed", "path", cfg.ModelPath)
				}
				continue
			}
			klog.InfoS("caught signal, shutting down", "signal", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := httpServer.Shutdown(ctx); err != nil {
				klog.ErrorS(err, "shutdown")
			}
			cancel()
			return
		}
	}()

	klog.InfoS("server started", "addr", addr, "model", cfg.ModelPath, "cacheBytes", cfg.CacheBytes)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		klog.Fatalf("listen: %v", err)
	}
	<-done
	srv.Wait()
}
