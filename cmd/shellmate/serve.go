package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shellmate/internal/adapter/channel"
)

// runServe starts the web terminal and blocks until interrupted.
func runServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := build(ctx, parseFlags())
	if err != nil {
		return err
	}
	defer rt.close()

	opts := channel.Options{
		Addr:           rt.cfg.Server.Addr,
		RequestsPerMin: rt.cfg.Server.RequestsPerMin,
		BurstSize:      rt.cfg.Server.BurstSize,
	}
	if rt.store != nil {
		opts.Store = rt.store
	}

	srv := channel.NewServer(rt.engine, rt.translator, rt.sessions, opts, rt.log)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Open your browser and go to: http://%s\n", srv.Addr())

	// Reap sessions idle past the TTL.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := rt.sessions.ReapStale(rt.cfg.Shell.SessionTTL); n > 0 {
					rt.log.Info("reaped stale sessions", "count", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	rt.log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}
