package commands

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	ManifestSource `embed:""`
	Addr           string `short:"a" help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	var (
		rec  metrics.Recorder = metrics.NoopRecorder{}
		opts                  = httpserver.Options{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			Logger:          slog.Default(),
		}
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPrometheusRecorder(reg)
		opts.PrometheusHandler = metrics.HTTPHandler(reg)
	}

	m, err := s.load(g.Ctx, cfg, rec)
	if err != nil {
		return err
	}
	slog.Info("Serving manifest",
		logfields.ManifestID(m.ID),
		logfields.Count(m.Len()),
		slog.String("base_path", cfg.Site.BasePath))

	return httpserver.New(newSite(cfg, m, rec), opts).Run(g.Ctx)
}
