package server

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/iov-one/trinity/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are passed to the AppGenerator. They are read from the
// environment first and can be overwritten by the start command flags.
type Options struct {
	// Home is the directory holding the application database. An empty
	// value runs the application in memory.
	Home   string
	Logger log.Logger
	// Debug returns the full error stack in ABCI responses.
	Debug bool
	// Bind is the address the ABCI socket server listens on.
	Bind string
	// MetricsAddr is the address of the Prometheus endpoint. Empty
	// disables it.
	MetricsAddr string
	// Registerer collects the application metrics.
	Registerer prometheus.Registerer
	// Gatherer is served on /metrics. It defaults to Registerer when that
	// is a *prometheus.Registry, and to the default registry otherwise.
	Gatherer prometheus.Gatherer
	// Stop, when set, shuts the server down once closed. Otherwise it runs
	// until the process is signaled.
	Stop <-chan struct{}
}

func parseFlags(opts *Options, args []string) error {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.Bind, flagBind, opts.Bind, "address server listens on")
	startFlags.StringVar(&opts.MetricsAddr, flagMetrics, opts.MetricsAddr, "address of the /metrics endpoint, empty to disable")
	startFlags.BoolVar(&opts.Debug, flagDebug, opts.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket.
// It only returns on error or once the server is stopped.
func StartCmd(gen AppGenerator, opts Options, args []string) error {
	if err := parseFlags(&opts, args); err != nil {
		return err
	}
	opts.Registerer, opts.Gatherer = metricsRegistry(opts.Registerer, opts.Gatherer)

	// Generate the app in the proper dir
	app, err := gen(&opts)
	if err != nil {
		return err
	}

	opts.Logger.Info("Starting ABCI app", "bind", opts.Bind)

	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(opts.Logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}

	metrics := metricsServer(opts.MetricsAddr, opts.Gatherer)
	if metrics != nil {
		opts.Logger.Info("Serving metrics", "addr", opts.MetricsAddr)
		go func() {
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				opts.Logger.Error("metrics server", "err", err)
			}
		}()
	}
	shutdown := func() {
		_ = svr.Stop()
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Shutdown(ctx)
		}
	}

	// TrapSignal runs the callback and exits the process on SIGINT or
	// SIGTERM. It does not block.
	cmn.TrapSignal(opts.Logger, shutdown)
	if opts.Stop == nil {
		select {}
	}
	<-opts.Stop
	opts.Logger.Info("Stopping ABCI app")
	shutdown()
	return nil
}

// metricsRegistry fills in the default Prometheus registry. A custom
// registry serves its own metrics.
func metricsRegistry(reg prometheus.Registerer, g prometheus.Gatherer) (prometheus.Registerer, prometheus.Gatherer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		if r, ok := reg.(prometheus.Gatherer); ok {
			g = r
		} else {
			g = prometheus.DefaultGatherer
		}
	}
	return reg, g
}

// metricsServer returns an HTTP server exposing g under /metrics, or nil
// when addr is empty.
func metricsServer(addr string, g prometheus.Gatherer) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: mux}
}
