package sim

import "fmt"

// ScenarioPreset names one of the Testable Properties scenarios (S1-S6)
// and the algorithm configuration that exercises it, so --scenario can be
// used instead of hand-assembling --algo/--umcc/--algo-config flags
// (SPEC_FULL.md §4 "Supplemented Features").
type ScenarioPreset struct {
	Name        string
	Description string
	Algo        string
	AlgoConfig  AlgoConfig
}

var scenarioPresets = map[string]ScenarioPreset{
	"S1": {
		Name:        "S1",
		Description: "single leaf-to-leaf path, steady traffic, no failures",
		Algo:        "shortest",
		AlgoConfig:  DefaultAlgoConfig(),
	},
	"S2": {
		Name:        "S2",
		Description: "path_down mid-run with no alternate path: traffic after the event goes unsent",
		Algo:        "shortest",
		AlgoConfig:  DefaultAlgoConfig(),
	},
	"S3": {
		Name:        "S3",
		Description: "two disjoint paths, shortest-path algorithm picks the lower hop count",
		Algo:        "shortest",
		AlgoConfig:  DefaultAlgoConfig(),
	},
	"S4": {
		Name:        "S4",
		Description: "two disjoint paths, sapex scoring prefers the lower-loss path over the lower-hop-count one",
		Algo:        "sapex",
		AlgoConfig:  DefaultAlgoConfig(),
	},
	"S5": {
		Name:        "S5",
		Description: "shared bottleneck across otherwise-disjoint candidates, UMCC suppresses the redundant one",
		Algo:        "sapex",
		AlgoConfig: func() AlgoConfig {
			c := DefaultAlgoConfig()
			c.UMCCEnabled = true
			return c
		}(),
	},
	"S6": {
		Name:        "S6",
		Description: "beacon segment combination across a core AS produces a usable leaf-to-leaf path before any direct beaconing between the leaves",
		Algo:        "shortest",
		AlgoConfig:  DefaultAlgoConfig(),
	},
}

// ResolveScenario looks up a named preset, case-sensitively on its S-number.
func ResolveScenario(name string) (ScenarioPreset, error) {
	preset, ok := scenarioPresets[name]
	if !ok {
		return ScenarioPreset{}, fmt.Errorf("unknown scenario %q", name)
	}
	return preset, nil
}
