package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sapex-sim/pathsim/sim"
)

// TrafficConfig is the JSON shape of a traffic file (spec §6): a set of
// flows to drive through Applications, plus a list of externally scheduled
// path_down/path_up events.
type TrafficConfig struct {
	Flows  []FlowConfig  `json:"flows"`
	Events []EventConfig `json:"events"`
}

type FlowConfig struct {
	SrcAS           string  `json:"src_as"`
	SrcAddr         string  `json:"src_addr"`
	DstAS           string  `json:"dst_as"`
	DstAddr         string  `json:"dst_addr"`
	TotalBytes      int     `json:"total_bytes"`
	PacketSizeBytes int     `json:"packet_size_bytes"`
	StartMs         float64 `json:"start_ms"`
}

type EventConfig struct {
	TimeMs float64  `json:"time_ms"`
	Kind   string   `json:"kind"`
	Path   []string `json:"path"`
}

// loadTrafficConfig reads and decodes a traffic JSON file.
func loadTrafficConfig(path string) (TrafficConfig, error) {
	var cfg TrafficConfig
	if path == "" {
		return cfg, fmt.Errorf("--traffic is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading traffic file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing traffic file: %w", err)
	}
	return cfg, nil
}

// buildApplications resolves every flow's source host against topo and
// constructs one sim.Application per flow, plus the list of scheduled path
// events ready for sim.SeedEventManager. Fatal-worthy errors (spec §7,
// unknown AS/host referenced by a flow) are returned rather than panicked so
// the caller can decide how to report them.
func buildApplications(topo *sim.Topology, cfg TrafficConfig) ([]*sim.Application, []sim.ScheduledPathEvent, error) {
	apps := make([]*sim.Application, 0, len(cfg.Flows))
	for i, flow := range cfg.Flows {
		src, err := topo.FindHost(flow.SrcAS, flow.SrcAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("flow %d: %w", i, err)
		}
		packetSize := flow.PacketSizeBytes
		if packetSize <= 0 {
			packetSize = 1000
		}
		apps = append(apps, sim.NewApplication(
			fmt.Sprintf("flow-%d", i),
			src,
			flow.DstAS,
			flow.DstAddr,
			flow.TotalBytes,
			packetSize,
			flow.StartMs,
		))
	}

	events := make([]sim.ScheduledPathEvent, 0, len(cfg.Events))
	for i, ev := range cfg.Events {
		if ev.Kind != "path_down" && ev.Kind != "path_up" {
			return nil, nil, fmt.Errorf("event %d: unknown kind %q", i, ev.Kind)
		}
		events = append(events, sim.ScheduledPathEvent{TimeMs: ev.TimeMs, Kind: ev.Kind, Path: ev.Path})
	}

	return apps, events, nil
}
