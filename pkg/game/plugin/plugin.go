// Package plugin exposes the tap/feedback trial to a host: its parameter
// table, trial initialization and timeline runs.
package plugin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/config"
	"dottap/pkg/game/renderer"
	"dottap/pkg/game/session"
)

// Deps are shared by every trial the plugin creates.
type Deps struct {
	Fetcher  *assets.Fetcher
	Audio    *assets.AudioCache
	Renderer renderer.Renderer
	Logger   *zap.Logger
}

// Plugin creates and runs trials.
type Plugin struct {
	deps Deps
}

// New creates a plugin. A nil Audio gets a silent cache.
func New(deps Deps) *Plugin {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Audio == nil {
		deps.Audio = assets.NewAudioCache(assets.FuncSoundFactory(nil))
	}
	if deps.Fetcher == nil {
		deps.Fetcher = assets.NewFetcher(".")
	}
	return &Plugin{deps: deps}
}

// Initialize validates cfg and returns the trial handle. Results go to host.
func (p *Plugin) Initialize(cfg config.Trial, host Host) (*session.Session, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", Name, err)
	}

	var finish session.FinishFunc
	if host != nil {
		finish = host.FinishTrial
	}

	return session.New(cfg, session.Deps{
		Fetcher: p.deps.Fetcher,
		Audio:   p.deps.Audio,
		Logger:  p.deps.Logger,
		Finish:  finish,
	}), nil
}

// Run initializes every trial of tl and presents them in order.
func (p *Plugin) Run(ctx context.Context, tl *config.Timeline, host Host) error {
	if p.deps.Renderer == nil {
		return fmt.Errorf("run %s: no renderer", Name)
	}

	sessions := make([]*session.Session, 0, len(tl.Trials))
	for i, cfg := range tl.Trials {
		s, err := p.Initialize(cfg, host)
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		sessions = append(sessions, s)
	}

	p.deps.Logger.Info("Timeline starting", zap.Int("trials", len(sessions)))
	if err := p.deps.Renderer.Run(ctx, sessions); err != nil {
		return err
	}
	p.deps.Logger.Info("Timeline finished")
	return nil
}
