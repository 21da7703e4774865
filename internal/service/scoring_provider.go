package service

import (
	"sync"
	"sync/atomic"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"

	"go.uber.org/zap"
)

// ScoringProvider hands out the current scoring tables. Readers never block;
// Reload swaps the whole table set in one pointer store.
type ScoringProvider struct {
	current atomic.Pointer[analytics.ScoringConfig]

	mu        sync.Mutex
	listeners []func(*analytics.ScoringConfig)
}

func NewScoringProvider(cfg *analytics.ScoringConfig) *ScoringProvider {
	if cfg == nil {
		cfg = analytics.DefaultScoringConfig()
	}
	p := &ScoringProvider{}
	p.current.Store(cfg)
	return p
}

// LoadScoringProvider reads the tables at path; a missing file yields the defaults.
func LoadScoringProvider(path string) (*ScoringProvider, error) {
	cfg, err := analytics.LoadScoringConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Scoring config loaded", zap.String("path", path), zap.Int("issues", len(cfg.Issues)))
	return NewScoringProvider(cfg), nil
}

func (p *ScoringProvider) Current() *analytics.ScoringConfig {
	return p.current.Load()
}

// OnReload registers fn to run after every successful Reload.
func (p *ScoringProvider) OnReload(fn func(*analytics.ScoringConfig)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Reload re-reads the tables. On failure, including a deleted or renamed
// file, the previous tables stay in effect.
func (p *ScoringProvider) Reload(path string) error {
	cfg, err := analytics.ReadScoringConfig(path)
	if err != nil {
		monitoring.ScoringConfigReloads.WithLabelValues("error").Inc()
		return err
	}
	p.current.Store(cfg)
	monitoring.ScoringConfigReloads.WithLabelValues("ok").Inc()
	logger.Log.Info("Scoring config swapped", zap.Int("issues", len(cfg.Issues)))

	p.mu.Lock()
	listeners := append([]func(*analytics.ScoringConfig){}, p.listeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
	return nil
}
