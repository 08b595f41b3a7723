package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AlgoConfig tunes the Sapex reference algorithm's scoring weights and its
// UMCC shared-bottleneck detector, resolving the Open Question of whether
// those constants should be configurable (SPEC_FULL.md §4 "Supplemented
// Features"). Loaded from an optional --algo-config YAML file; fields absent
// from the file keep DefaultAlgoConfig's values, while a field set
// explicitly to zero stays zero.
type AlgoConfig struct {
	// Sapex composite score weights: score = avg_latency_ms + AlphaLossWeight*loss_rate + BetaThroughputWeight/throughput_mbps.
	AlphaLossWeight       float64 `yaml:"alpha_loss_weight"`
	BetaThroughputWeight  float64 `yaml:"beta_throughput_weight"`
	CandidateHistoryDepth int     `yaml:"candidate_history_depth"`

	// UMCC detection thresholds (spec §4.9.1).
	UMCCEnabled           bool    `yaml:"umcc_enabled"`
	UMCCRecentWindow      int     `yaml:"umcc_recent_window"`
	UMCCBaselineWindow    int     `yaml:"umcc_baseline_window"`
	UMCCRTTFactor         float64 `yaml:"umcc_rtt_factor"`
	UMCCLossRateThreshold float64 `yaml:"umcc_loss_rate_threshold"`
	UMCCThroughputFactor  float64 `yaml:"umcc_throughput_factor"`
}

// DefaultAlgoConfig returns the constants the algorithm uses when no
// --algo-config file is supplied.
func DefaultAlgoConfig() AlgoConfig {
	return AlgoConfig{
		AlphaLossWeight:       100.0,
		BetaThroughputWeight:  0.0,
		CandidateHistoryDepth: 10,

		UMCCEnabled:           false,
		UMCCRecentWindow:      3,
		UMCCBaselineWindow:    20,
		UMCCRTTFactor:         1.5,
		UMCCLossRateThreshold: 0.05,
		UMCCThroughputFactor:  0.7,
	}
}

// LoadAlgoConfig reads and parses a YAML tuning file, validating the
// numeric fields that must be positive (spec §7 "config validation").
func LoadAlgoConfig(path string) (AlgoConfig, error) {
	cfg := DefaultAlgoConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading algo config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing algo config: %w", err)
	}
	if cfg.CandidateHistoryDepth <= 0 {
		return cfg, fmt.Errorf("candidate_history_depth must be positive, got %d", cfg.CandidateHistoryDepth)
	}
	if cfg.UMCCRecentWindow <= 0 || cfg.UMCCBaselineWindow <= 0 {
		return cfg, fmt.Errorf("umcc windows must be positive")
	}
	return cfg, nil
}
