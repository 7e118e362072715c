// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/cloud"
	"github.com/shauraya-mohan/chatbot/internal/config"
	"github.com/shauraya-mohan/chatbot/internal/logging"
	"github.com/shauraya-mohan/chatbot/internal/reference"
	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/telemetry"
)

// app is everything a front end needs, wired from one config.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	usage    *telemetry.UsageTracker
	store    *reference.Store
	watcher  *reference.Watcher
	client   *cloud.Client
	session  *session.Session
	revealer reveal.Revealer
	loaded   <-chan error
}

// appOptions chooses the parts that differ per front end.
type appOptions struct {
	sink render.Sink
	// instant disables the terminal reveal.
	instant bool
	// logFallback is used when the config names no log file, so a
	// full-screen window is not drawn over by log lines.
	logFallback string
	// completer replaces the cloud client; used by tests.
	completer session.Completer
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logOpts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if logOpts.File == "" {
		logOpts.File = opts.logFallback
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = telemetry.NewMetrics(a.registry)
	a.usage = telemetry.NewUsageTracker(a.metrics)

	a.store = reference.NewStore(logger)
	loader := reference.FileLoader{
		CompanyPath: cfg.Reference.CompanyPath,
		CatalogPath: cfg.Reference.CatalogPath,
	}
	loadDone := a.store.LoadAsync(ctx, loader)

	if cfg.Reference.Watch {
		w, err := reference.NewWatcher(a.store, loader, loader.Paths(), logger,
			reference.WithDebounce(cfg.Reference.Debounce()),
			reference.WithReloadHook(a.metrics.ReferenceLoad),
		)
		if err != nil {
			logger.Warn("reference watch disabled", zap.Error(err))
		} else {
			w.Start()
			a.watcher = w
		}
	}

	completer := opts.completer
	if completer == nil {
		a.client = cloud.NewClient(cfg.Completion.APIKey).
			WithEndpoint(cfg.Completion.URL).
			WithModel(cfg.Completion.Model).
			WithMaxTokens(cfg.Completion.MaxTokens).
			WithTemperature(cfg.Completion.Temperature).
			WithTimeout(cfg.Completion.Timeout()).
			WithLogger(logger).
			WithUsageHook(a.usage.Record)
		if !a.client.IsConfigured() {
			logger.Warn("no API key configured; replies will apologize",
				zap.String("hint", "set CHATBOT_API_KEY or completion.api_key"))
		}
		completer = a.client
	}

	a.revealer = reveal.Instant{}
	if !opts.instant && !cfg.Reveal.Disabled {
		a.revealer = reveal.NewScheduler(reveal.WithInterval(cfg.Reveal.Interval()))
	}

	sink := opts.sink
	if sink == nil {
		sink = render.Discard{}
	}
	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithMetrics(a.metrics),
		session.WithMessages(session.Messages{
			Greeting: cfg.Assistant.Greeting,
			Loading:  cfg.Assistant.LoadingMessage,
			Apology:  cfg.Assistant.ApologyMessage,
		}),
		session.WithCompletionTimeout(cfg.Completion.Timeout()),
	}
	if actions := quickActions(cfg); len(actions) > 0 {
		sessOpts = append(sessOpts, session.WithQuickActions(actions))
	}
	a.session = session.New(a.store, completer, render.NewPipeline(sink, a.revealer), sessOpts...)
	a.loaded = a.watchLoad(loadDone)

	return a, nil
}

// watchLoad records the initial load in metrics and logs and passes the
// result on. A failed load releases the greeting, which would otherwise wait
// for data that is not coming.
func (a *app) watchLoad(done <-chan error) <-chan error {
	out := make(chan error, 1)
	go func() {
		defer close(out)
		err := <-done
		a.metrics.ReferenceLoad(err)
		if err != nil {
			a.logger.Error("reference data failed to load; replies will say it is still loading",
				zap.Error(err))
			a.session.ReleaseGreeting()
		}
		out <- err
	}()
	return out
}

func quickActions(cfg *config.Config) []session.QuickAction {
	out := make([]session.QuickAction, 0, len(cfg.Assistant.QuickActions))
	for _, qa := range cfg.Assistant.QuickActions {
		out = append(out, session.QuickAction{Label: qa.Label, Message: qa.Message})
	}
	return out
}

// Close stops background work and flushes the logger.
func (a *app) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Debug("watcher close", zap.Error(err))
		}
	}
	if s, ok := a.revealer.(*reveal.Scheduler); ok {
		s.Stop()
	}
	_ = a.logger.Sync()
}

// defaultLogFile is where the chat window logs when no file is configured.
func defaultLogFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatbot.log")
}
