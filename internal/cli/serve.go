// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tochemey/userdir/config"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/sink"
	"github.com/tochemey/userdir/sink/kafka"
	"github.com/tochemey/userdir/sink/nats"
	"github.com/tochemey/userdir/stats"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the directory behind the admin HTTP server.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statistics and metrics over HTTP",
		Long:  "Start the directory, expose the statistics under /stats and the Prometheus metrics under /metrics, and forward create events to the configured sinks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", cfg.HTTP.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on addr=(%s): %w", cfg.HTTP.Addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", identityColor.Sprint(listener.Addr().String()))
			return serve(ctx, cfg, listener)
		},
	}
	cmd.Flags().String("addr", "", "override the HTTP listen address")
	return cmd
}

// serve runs until ctx is done and then shuts everything down in reverse
// order of startup.
func serve(ctx context.Context, cfg *config.Config, listener net.Listener) (err error) {
	app, err := newApp(ctx, cfg)
	if err != nil {
		_ = listener.Close()
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector, err := stats.New(app.dir, stats.WithLogger(app.logger), stats.WithRegisterer(registry))
	if err != nil {
		_ = listener.Close()
		return multierr.Append(err, app.close(ctx))
	}
	collector.Start()

	sinks, err := openSinks(cfg.Sinks)
	if err != nil {
		_ = listener.Close()
		collector.Stop()
		return multierr.Append(err, app.close(ctx))
	}
	var forwarder *sink.Forwarder
	if len(sinks) > 0 {
		forwarder = sink.NewForwarder(app.dir, sinks,
			sink.WithLogger(app.logger),
			sink.WithInterval(cfg.Sinks.Interval.Duration))
		forwarder.Start()
	}

	server := &http.Server{
		Handler:           newRouter(collector, registry, app.logger),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          app.logger.StdLogger(),
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	app.logger.Infof("admin server listening on %s", listener.Addr())

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err == http.ErrServerClosed {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Append(err, server.Shutdown(shutdownCtx))
	if forwarder != nil {
		err = multierr.Append(err, forwarder.Stop(shutdownCtx))
	}
	collector.Stop()
	return multierr.Append(err, app.close(shutdownCtx))
}

func newRouter(collector *stats.Collector, registry *prometheus.Registry, logger log.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger.StdLogger(), NoColor: true}))

	stats.NewHandler(collector).Register(router)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

func openSinks(cfg config.Sinks) (sinks []sink.Sink, err error) {
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := kafka.New(&kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, kafkaSink)
	}
	if cfg.NATS.URL != "" {
		natsSink, err := nats.New(&nats.Config{URL: cfg.NATS.URL, Subject: cfg.NATS.Subject})
		if err != nil {
			for _, opened := range sinks {
				_ = opened.Close()
			}
			return nil, err
		}
		sinks = append(sinks, natsSink)
	}
	return sinks, nil
}
