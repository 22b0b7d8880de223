package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	v1 "github.com/wtran29/ledgercore/app/services/ledgercored/handlers/v1"
	"github.com/wtran29/ledgercore/foundation/blockchain/kv"
	"github.com/wtran29/ledgercore/foundation/blockchain/mempool"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
	"github.com/wtran29/ledgercore/foundation/blockchain/state"
	"github.com/wtran29/ledgercore/foundation/metrics"
	"github.com/wtran29/ledgercore/foundation/web"
	"github.com/wtran29/ledgercore/foundation/web/mid"
)

// startConfig is parsed from flags/env by ardanlabs/conf under the
// LEDGERCORE prefix (e.g. LEDGERCORE_WEB_API_HOST).
type startConfig struct {
	conf.Version
	Web struct {
		APIHost         string        `conf:"default:0.0.0.0:3000"`
		DebugHost       string        `conf:"default:0.0.0.0:4000"`
		ReadTimeout     time.Duration `conf:"default:5s"`
		WriteTimeout    time.Duration `conf:"default:10s"`
		IdleTimeout     time.Duration `conf:"default:120s"`
		ShutdownTimeout time.Duration `conf:"default:20s"`
	}
	Store struct {
		Path string `conf:"default:ledgercore.db"`
	}
	RateLimit struct {
		RPS   float64 `conf:"default:50"`
		Burst int     `conf:"default:100"`
	}
}

func newStartCmd(log *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the ledger core node and serve its HTTP surface",
		RunE: func(c *cobra.Command, args []string) error {
			return runStart(log)
		},
	}
}

func runStart(log *zap.SugaredLogger) error {
	cfg := startConfig{
		Version: conf.Version{Build: "develop", Desc: "ledgercored"},
	}

	help, err := conf.Parse("LEDGERCORE", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	store, err := kv.OpenBoltStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store %q: %w", cfg.Store.Path, err)
	}
	defer store.Close()

	chain, err := state.New(store, signature.Ed25519Verifier{}, func(v string, args ...any) {
		log.Infow(v, args...)
	})
	if err != nil {
		return fmt.Errorf("constructing blockchain: %w", err)
	}

	pool := mempool.New(signature.Ed25519Verifier{})

	shutdown := make(chan os.Signal, 1)
	app := web.NewApp(shutdown,
		mid.Logger(log),
		mid.RateLimit(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)

	routeCfg := v1.Config{Log: log, Chain: chain, Mempool: pool}
	v1.PublicRoutes(app, routeCfg)
	v1.PrivateRoutes(app, routeCfg)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      app,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	debugMux := http.NewServeMux()
	debugMux.Handle("/metrics", metrics.Handler())
	debug := http.Server{Addr: cfg.Web.DebugHost, Handler: debugMux}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("api listening", "host", cfg.Web.APIHost)
		serverErrors <- api.ListenAndServe()
	}()
	go func() {
		log.Infow("debug listening", "host", cfg.Web.DebugHost)
		_ = debug.ListenAndServe()
	}()

	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown started", "signal", sig)
		defer log.Infow("shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
