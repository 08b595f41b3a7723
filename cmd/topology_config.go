package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sapex-sim/pathsim/sim"
)

// loadTopologyConfig reads and decodes a topology JSON file (spec §6).
// Structural validation (dangling references, missing addresses) happens in
// sim.BuildTopology; this only handles the decode-or-fatal step spec §7
// assigns to the CLI layer.
func loadTopologyConfig(path string) (sim.TopologyConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("--topology is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	var cfg sim.TopologyConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing topology file: %w", err)
	}
	return cfg, nil
}
