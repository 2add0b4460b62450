package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/config"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/analyzer"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/api"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/dnscheck"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/grading"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/probe"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/store"
)

// serveCmd is the cobra command that starts the analysis API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the security analysis api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfg := config.New()

	records, err := store.Open(store.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
	})
	if err != nil {
		return fmt.Errorf("opening analysis store: %w", err)
	}

	defer func() { _ = records.Close() }()

	gradingClient := grading.New(
		grading.WithBaseURL(cfg.GradingBaseURL),
		grading.WithPollInterval(cfg.GradingPollInterval),
		grading.WithMaxAttempts(cfg.GradingMaxAttempts),
	)

	prober := probe.New()

	collector := dnscheck.New(
		dnscheck.WithDNSServer(cfg.DNSServer),
		dnscheck.WithTimeout(cfg.DNSTimeout),
	)

	handler := api.NewRouter(api.RouterConfig{
		SSL:            analyzer.NewSSLAnalyzer(gradingClient, prober, records),
		DNS:            analyzer.NewDNSAnalyzer(collector, records),
		Records:        records,
		MaxBodySize:    cfg.MaxBodySize,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Listen).Msg("starting security analysis service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
