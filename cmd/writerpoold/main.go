// Command writerpoold runs the caching writer pool as a long-lived
// service: an HTTP surface for acquiring/appending/releasing journal
// writers, a scheduler-driven sweep of idle entries, and a Prometheus
// metrics endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"

	"oss.nandlabs.io/writerpool/chrono"
	"oss.nandlabs.io/writerpool/fnutils"
	"oss.nandlabs.io/writerpool/internal/metrics"
	"oss.nandlabs.io/writerpool/journalstore"
	"oss.nandlabs.io/writerpool/l3"
	"oss.nandlabs.io/writerpool/lifecycle"
	"oss.nandlabs.io/writerpool/managers"
	"oss.nandlabs.io/writerpool/pool"
)

var logger = l3.Get()

func main() {
	configPath := flag.String("config", "./writerpoold.properties", "path to the daemon's properties file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.ErrorF("loading config: %v", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.ErrorF("creating data dir %s: %v", cfg.DataDir, err)
		os.Exit(1)
	}

	poolMetrics := metrics.NewPoolMetrics()
	writerPool := pool.NewPool(
		&journalstore.Factory{Dir: cfg.DataDir},
		cfg.TTL,
		pool.WithObserver(poolMetrics),
	)
	poolMetrics.WatchFreeWriters(writerPool)

	// A single process may serve more than one journal namespace (e.g.
	// separate pools per storage tier); the registry looks one up by
	// name. This deployment registers only "default".
	registry := managers.NewItemManager[*pool.Pool]()
	registry.Register("default", writerPool)

	schedulerOpts := []chrono.Option{chrono.WithCheckInterval(cfg.SweepInterval)}
	if store, serr := chrono.NewFileStorage(cfg.DataDir + "/scheduler-state.yaml"); serr != nil {
		logger.WarnF("scheduler file storage unavailable, falling back to in-memory: %v", serr)
	} else {
		schedulerOpts = append(schedulerOpts, chrono.WithStorage(store))
	}
	scheduler := chrono.New(schedulerOpts...)
	if err := scheduler.AddIntervalJob("sweep", "writer pool sweep", func(ctx context.Context) error {
		didWork := writerPool.Run()
		if didWork {
			logger.Debug("sweep reclaimed one or more idle writers")
		}
		return nil
	}, cfg.SweepInterval); err != nil {
		logger.ErrorF("scheduling sweep job: %v", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", poolMetrics.Handler())
	mux.HandleFunc("/append", appendHandler(registry))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	daemon := &lifecycle.SimpleComponent{
		CompId: "writerpoold",
		StartFunc: func() error {
			if err := scheduler.Start(); err != nil {
				return err
			}
			go func() {
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.ErrorF("metrics server: %v", err)
				}
			}()
			logger.InfoF("writerpoold started: data_dir=%s ttl=%s metrics_addr=%s", cfg.DataDir, cfg.TTL, cfg.MetricsAddr)
			// Log once a 5s post-startup grace window has elapsed. The
			// callback only logs; the sweep job is already scheduled and
			// does not wait for it. ExecuteAfter blocks until timeout, so
			// run it off the startup path.
			go func() {
				if err := fnutils.ExecuteAfter(func() {
					logger.Debug("post-startup grace window elapsed")
				}, 5*time.Second); err != nil {
					logger.WarnF("scheduling startup grace callback: %v", err)
				}
			}()
			return nil
		},
		StopFunc: func() error {
			if err := writerPool.Close(); err != nil {
				logger.ErrorF("closing pool: %v", err)
			}
			if err := scheduler.Stop(); err != nil {
				logger.ErrorF("stopping scheduler: %v", err)
			}
			return metricsServer.Close()
		},
	}

	if err := daemon.Start(); err != nil {
		logger.ErrorF("startup failed: %v", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logger.InfoF("received signal %v, shutting down", sig)
	if err := daemon.Stop(); err != nil {
		logger.ErrorF("shutdown error: %v", err)
	}
}

// appendHandler demonstrates the acquire/append/release cycle a real
// client performs against one named journal, tagging each request with a
// short-lived ULID purely for log correlation.
func appendHandler(registry managers.ItemManager[*pool.Pool]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journal := r.URL.Query().Get("journal")
		if journal == "" {
			http.Error(w, "missing journal query param", http.StatusBadRequest)
			return
		}
		corrID := ulid.Make().String()
		p := registry.Get("default")
		owner := pool.NextOwnerToken()

		writer, err := p.Writer(owner, pool.JournalMetadata{Name: journal})
		if err != nil {
			logger.WarnF("[%s] acquire %s failed: %v", corrID, journal, err)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		defer func() {
			if cerr := writer.Close(); cerr != nil {
				logger.ErrorF("[%s] close %s: %v", corrID, journal, cerr)
			}
		}()

		jw, ok := writer.(*journalstore.Writer)
		if !ok {
			http.Error(w, "internal: unexpected writer type", http.StatusInternalServerError)
			return
		}
		if err := jw.Append([]byte(r.URL.Query().Get("data"))); err != nil {
			logger.ErrorF("[%s] append %s: %v", corrID, journal, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		logger.InfoF("[%s] appended to %s", corrID, journal)
		fmt.Fprintf(w, "ok %s\n", corrID)
	}
}
