package extractor

import (
	"fmt"

	"formpilot/internal/config"
	"formpilot/internal/port"
)

// ProviderFactory is a function that creates a RecordExtractor from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.RecordExtractor, error)

// registry of extractor provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a RecordExtractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.ProviderConfig) (port.RecordExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// BuildFromConfig assembles the extractor stack the config describes: a single
// provider, a rate-limit-aware fallback chain, or a dual extractor that merges
// two providers' records.
func BuildFromConfig(cfg *config.ExtractorConfig) (port.RecordExtractor, error) {
	primaryCfg := cfg.PrimaryConfig()
	primary, err := NewExtractor(primaryCfg)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if cfg.Mode == "dual" {
		if secondaryCfg == nil {
			return nil, fmt.Errorf("dual extraction mode requires a secondary provider")
		}
		secondary, err := NewExtractor(secondaryCfg)
		if err != nil {
			return nil, err
		}
		return NewDualExtractor(primary, secondary), nil
	}

	extractors := []port.RecordExtractor{primary}
	names := []string{primaryCfg.Provider}
	if secondaryCfg != nil {
		secondary, err := NewExtractor(secondaryCfg)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, secondary)
		names = append(names, secondaryCfg.Provider)
	}
	if tertiaryCfg := cfg.TertiaryConfig(); tertiaryCfg != nil {
		tertiary, err := NewExtractor(tertiaryCfg)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, tertiary)
		names = append(names, tertiaryCfg.Provider)
	}

	if len(extractors) == 1 {
		return primary, nil
	}
	return NewFallbackExtractor(extractors, names), nil
}
