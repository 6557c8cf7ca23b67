// Package cmd is the riceinspect command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/app"
	"github.com/zjrosen/riceinspect/internal/config"
	"github.com/zjrosen/riceinspect/internal/log"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/recordapi"
	"github.com/zjrosen/riceinspect/internal/ui/shared/recall"
)

// Version is stamped at build time.
var Version = "dev"

// rootOptions holds persistent flags and what setup resolves from them.
type rootOptions struct {
	configFile  string
	apiURL      string
	debug       bool
	logFile     string
	metricsAddr string

	cfg      config.Config
	cfgPath  string
	client   *recordapi.Client
	registry *prometheus.Registry
	closeLog func()
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	opts := &rootOptions{}
	defer opts.close()
	return newRootCmd(opts).ExecuteContext(ctx)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riceinspect",
		Short: "Create, browse and export rice grain inspections",
		Long: `riceinspect is a terminal client for the rice inspection record service.

Without a subcommand it opens the interactive UI: a create form and a
searchable, pageable history with bulk delete and exports.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
		RunE:              opts.runTUI,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default .riceinspect/config.yaml, then ~/.config/riceinspect/config.yaml)")
	flags.StringVar(&opts.apiURL, "api", "", "record service base URL, overrides api.base_url")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "write a debug log")
	flags.StringVar(&opts.logFile, "log-file", "", "debug log path, implies --debug")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve client request metrics on this address while the UI runs")

	cmd.AddCommand(
		newInitCmd(),
		newStandardsCmd(opts),
		newHistoryCmd(opts),
		newShowCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
		newDevServerCmd(),
	)
	return cmd
}

// setup loads configuration, starts the debug log and builds the client.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg
	o.cfgPath = path

	if o.debug || o.logFile != "" {
		logPath := o.logFile
		if logPath == "" {
			logPath = cfg.Log.File
		}
		if logPath == "" {
			logPath = config.LogPath(path)
		}
		closeLog, err := log.InitWithFormat(logPath, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("starting debug log: %w", err)
		}
		log.SetLevel(cfg.Log.Level)
		o.closeLog = closeLog
	}
	log.Info(log.CatConfig, "configuration loaded",
		"path", path, "base_url", cfg.API.BaseURL, "command", cmd.Name())

	o.registry = prometheus.NewRegistry()
	o.client = recordapi.New(cfg.API.BaseURL,
		recordapi.WithTimeout(cfg.API.Timeout),
		recordapi.WithRegisterer(o.registry))
	return nil
}

func (o *rootOptions) close() {
	if o.closeLog != nil {
		o.closeLog()
		o.closeLog = nil
	}
}

func (o *rootOptions) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := o.cfg

	recallPath := ""
	if cfg.History.PersistRecall {
		recallPath = config.RecallPath(o.cfgPath)
	}
	ids, err := recall.Load(recallPath, cfg.History.RecallSize)
	if err != nil {
		log.ErrorErr(log.CatConfig, "loading search recall", err, "path", recallPath)
		ids = recall.New(cfg.History.RecallSize)
	}

	if o.metricsAddr != "" {
		stop := o.serveMetrics(o.metricsAddr)
		defer stop()
	}

	services := mode.Services{
		Config:     &cfg,
		ConfigPath: o.cfgPath,
		Client:     o.client,
		Recall:     ids,
		RecallPath: recallPath,
		Ctx:        ctx,
		Loc:        time.Local,
		Now:        time.Now,
	}
	p := tea.NewProgram(app.New(services), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// serveMetrics exposes the client registry until the returned stop is called.
func (o *rootOptions) serveMetrics(addr string) func() {
	o.registry.MustRegister(collectors.NewGoCollector())
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorErr(log.CatAPI, "metrics server stopped", err, "addr", addr)
		}
	}()
	log.Info(log.CatAPI, "serving metrics", "addr", addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
