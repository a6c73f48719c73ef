package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/notify"
)

// envOr reads an environment variable with a fallback default, so the server
// can be configured without flags in a container.
func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "stream the simulation over websocket for a browser front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			logger := NewLogger(logLevel)
			return serve(addr, cfg.FPS, logger, func() *beaker.Beaker {
				return buildBeaker(cfg, engine.SystemClock{}, rand.New(rand.NewSource(cfg.Seed)))
			})
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", envOr("BEAKERSIM_ADDR", ":8080"), "HTTP listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("BEAKERSIM_LOG_LEVEL", "info"), "log level (debug|info|warn|error)")
	return cmd
}

func serve(addr string, fps int, logger *Logger, newBeaker func() *beaker.Beaker) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := notify.NewHub()
	defer hub.Close()

	// The simulation loop owns the beaker exclusively; HTTP handlers only see
	// the latest published frame.
	var (
		mu     sync.RWMutex
		latest notify.FrameEvent
	)

	go func() {
		b := newBeaker()
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()

		frame := 0
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.Step()
				frame++
				ev := notify.Snapshot(b, frame, time.Since(start))

				mu.Lock()
				latest = ev
				mu.Unlock()

				if err := hub.Broadcast(ctx, ev); err != nil && ctx.Err() == nil {
					logger.Warnf("broadcast failed: %v", err)
				}
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		logger.Debugf("websocket client connecting from %s", r.RemoteAddr)
		hub.ServeWS(w, r)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		ev := latest
		mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"frame":        ev.Frame,
			"time_s":       ev.Time,
			"bonded_pairs": ev.BondedPairs,
			"free_protons": ev.FreeProtons,
			"clients":      hub.ClientCount(),
		}); err != nil {
			logger.Errorf("status encode failed: %v", err)
		}
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
