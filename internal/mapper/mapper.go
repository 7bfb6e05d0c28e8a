// Package mapper implements the model-assisted field mapper: fields the
// deterministic matcher could not place in the form markup are handed to a
// general-purpose LLM together with the raw HTML, and the model proposes
// typed fill operations against selectors it claims exist on the page.
//
// Two provider implementations exist (Gemini, Claude) behind the
// port.FieldMapper interface, and TieredMapper chains a cheap fast tier with
// a higher-capability fallback tier. Mapper output is advisory: the caller
// dedupes it against deterministic results and treats total failure as an
// empty operation list, never as a fatal error.
package mapper

import (
	"context"
	"fmt"
	"log"

	"formpilot/internal/config"
	"formpilot/internal/port"
)

// TieredMapper tries a primary mapper and falls back to a secondary one when
// the primary errors. The tiers usually run the same provider with different
// models (fast tier first, capable tier on failure).
type TieredMapper struct {
	primary   port.FieldMapper
	secondary port.FieldMapper
}

// NewTieredMapper creates a two-tier mapper. secondary may be nil, in which
// case primary errors are returned as-is.
func NewTieredMapper(primary, secondary port.FieldMapper) *TieredMapper {
	return &TieredMapper{primary: primary, secondary: secondary}
}

func (m *TieredMapper) MapFields(ctx context.Context, input port.MapInput) (*port.MapOutput, error) {
	out, err := m.primary.MapFields(ctx, input)
	if err == nil {
		return out, nil
	}
	if m.secondary == nil {
		return nil, err
	}

	log.Printf("mapper.TieredMapper: primary tier failed, trying fallback tier: %v", err)
	out, fallbackErr := m.secondary.MapFields(ctx, input)
	if fallbackErr != nil {
		return nil, fmt.Errorf("all mapper tiers failed: primary: %v; fallback: %w", err, fallbackErr)
	}
	return out, nil
}

// BuildFromConfig constructs the mapper the configuration describes: a
// single provider, or a TieredMapper when a secondary tier is configured.
func BuildFromConfig(cfg *config.MapperConfig) (port.FieldMapper, error) {
	primary, err := newProvider(cfg.PrimaryConfig(), cfg.MarkupLimit)
	if err != nil {
		return nil, fmt.Errorf("building primary mapper: %w", err)
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := newProvider(secondaryCfg, cfg.MarkupLimit)
	if err != nil {
		return nil, fmt.Errorf("building fallback mapper: %w", err)
	}
	return NewTieredMapper(primary, secondary), nil
}

func newProvider(cfg *config.ProviderConfig, markupLimit int) (port.FieldMapper, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg, markupLimit), nil
	case "claude":
		return NewClaude(cfg, markupLimit), nil
	default:
		return nil, fmt.Errorf("unknown mapper provider: %s", cfg.Provider)
	}
}
