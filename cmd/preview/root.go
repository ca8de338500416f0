// ABOUTME: Root cobra command wiring configuration, logging, metrics and the preview engine
// ABOUTME: Runs one resolution per invocation, optionally selecting a candidate afterwards

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"digests-preview/core/interfaces"
	"digests-preview/core/preview"
	"digests-preview/core/source"
	"digests-preview/infrastructure/cache/memory"
	"digests-preview/infrastructure/download"
	stdhttp "digests-preview/infrastructure/http/standard"
	"digests-preview/infrastructure/logger/logrus"
	"digests-preview/infrastructure/metrics"
	"digests-preview/pkg/config"
)

type options struct {
	configFile string
	selectURL  string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "preview <link>",
		Short: "Find the feeds and sources behind a link",
		Long: `preview normalizes a link, fetches it and recognizes feeds (RSS, Atom,
JSON Feed) and known sites (GitHub repositories, Reddit communities). Links
found in the fetched page are followed one level deep. The first source
found is selected and its posts are listed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (environment variables use the PREVIEW_ prefix)")
	cmd.Flags().StringVar(&opts.selectURL, "select", "", "candidate URL to select after resolving")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")

	return cmd
}

func run(cmd *cobra.Command, opts *options, link string) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logrus.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	var registry *prometheus.Registry
	deps := interfaces.Dependencies{
		HTTPClient: stdhttp.NewStandardHTTPClient(
			cfg.HTTPTimeout(),
			stdhttp.WithUserAgent(cfg.HTTP.UserAgent),
			stdhttp.WithMaxRetries(cfg.HTTP.MaxRetries),
		),
		Logger: logger,
	}
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		recorder, err := metrics.NewRecorder(registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		deps.Metrics = recorder
	}

	engine := newEngine(cfg, deps)
	defer engine.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Resolving link", map[string]interface{}{
		"link": link,
	})
	if err := engine.SetURL(ctx, link); err != nil {
		logger.Error("Resolution failed", map[string]interface{}{
			"link":  link,
			"error": err.Error(),
		})
	}

	if opts.selectURL != "" {
		if err := engine.SelectCandidate(ctx, opts.selectURL); err != nil {
			logger.Error("Selection failed", map[string]interface{}{
				"url":   opts.selectURL,
				"error": err.Error(),
			})
		}
	}

	result := snapshot(engine)
	if opts.jsonOutput {
		err = writeJSON(cmd.OutOrStdout(), result)
	} else {
		err = writeText(cmd.OutOrStdout(), result)
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if registry != nil {
		if err := writeMetrics(cmd.ErrOrStderr(), registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.New("interrupted")
	}
	return nil
}

func newEngine(cfg *config.Config, deps interfaces.Dependencies) *preview.Engine {
	return preview.New(preview.Dependencies{
		Sources: source.Default(),
		NewTask: download.NewFactory(deps.HTTPClient, download.Options{
			RequestsPerSecond: cfg.Download.RequestsPerSecond,
			Burst:             cfg.Download.Burst,
			MaxBodyBytes:      cfg.Download.MaxBodyBytes,
		}),
		PostsCache: memory.NewPostsCache(),
		Logger:     deps.Logger,
		Metrics:    deps.Metrics,
	}, preview.Options{
		MaxDiscoveredLinks:   cfg.Preview.MaxDiscoveredLinks,
		DiscoveryConcurrency: cfg.Preview.DiscoveryConcurrency,
		ResolveTimeout:       cfg.ResolveTimeout(),
	})
}
