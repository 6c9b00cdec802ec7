package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sjalq/bitly-maker/internal/config"
	"github.com/sjalq/bitly-maker/internal/domain"
	"github.com/sjalq/bitly-maker/internal/logger"
	"github.com/sjalq/bitly-maker/internal/probe"
	"github.com/sjalq/bitly-maker/pkg/httpclient"
)

// Probe wires together config, transport and the request runner for a single run.
type Probe struct {
	cfg    *config.Config
	runner *probe.Runner
	log    logger.Logger
}

// NewProbe builds a probe runtime. The report is written to out, transport
// failures to errOut.
func NewProbe(cfg *config.Config, client httpclient.Client, out, errOut io.Writer, log logger.Logger) (*Probe, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	return &Probe{
		cfg:    cfg,
		runner: probe.NewRunner(client, probe.EndpointFromConfig(cfg), out, errOut, log),
		log:    log,
	}, nil
}

// Run sends the single shorten request and prints the report.
func (p *Probe) Run(ctx context.Context) error {
	if p == nil || p.runner == nil {
		return fmt.Errorf("probe is not initialized")
	}

	p.log.InfoObj("probe starting", "config", p.cfg)

	if err := p.runner.Run(ctx, domain.Invocation{APIKey: p.cfg.APIKey, LongURL: p.cfg.LongURL}); err != nil {
		return fmt.Errorf("probe run: %w", err)
	}

	p.log.InfoObj("probe finished", "long_url", p.cfg.LongURL)
	return nil
}
