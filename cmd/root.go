// cmd/root.go
package cmd

import (
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sapex-sim/pathsim/sim"
	"github.com/sapex-sim/pathsim/sim/sapex"
)

var (
	topologyPath    string
	trafficPath     string
	algoName        string
	algoConfigPath  string
	scenarioName    string
	logLevel        string
	horizonMs       float64
	seed            int64
	metricsOut      string
	umccEnabledFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pathsim",
	Short: "Discrete-event simulator for inter-domain path-construction beaconing",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a beaconing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		algo := algoName
		algoCfg, err := sim.LoadAlgoConfig(algoConfigPath)
		if err != nil {
			logrus.Fatalf("loading algo config: %v", err)
		}

		if scenarioName != "" {
			preset, err := sim.ResolveScenario(scenarioName)
			if err != nil {
				logrus.Fatalf("resolving scenario: %v", err)
			}
			logrus.Infof("scenario %s: %s", preset.Name, preset.Description)
			algo = preset.Algo
			if algoConfigPath == "" {
				algoCfg = preset.AlgoConfig
			}
		}
		if umccEnabledFlag {
			algoCfg.UMCCEnabled = true
		}

		topoCfg, err := loadTopologyConfig(topologyPath)
		if err != nil {
			logrus.Fatalf("loading topology: %v", err)
		}
		topo, err := sim.BuildTopology(topoCfg)
		if err != nil {
			logrus.Fatalf("building topology: %v", err)
		}

		var selector sim.PathSelector
		switch algo {
		case "shortest":
			selector = sim.NewShortestPathSelector(topo)
		case "sapex":
			selector = sapex.NewSelector(topo, algoCfg)
		default:
			logrus.Fatalf("unknown algorithm %q (want shortest or sapex)", algo)
		}

		engine := sim.NewEngine(topo, selector, horizonMs)
		sim.SeedBeaconEmission(engine)
		seedDefaultProbing(engine, topo)

		traffic, err := loadTrafficConfig(trafficPath)
		if err != nil {
			logrus.Fatalf("loading traffic: %v", err)
		}
		apps, events, err := buildApplications(topo, traffic)
		if err != nil {
			logrus.Fatalf("building traffic: %v", err)
		}
		for _, app := range apps {
			app.Start(engine)
		}
		sim.SeedEventManager(engine, events)

		logrus.Infof("running with algo=%s seed=%d horizon=%.0fms", algo, seed, horizonMs)
		engine.Run()
		engine.Metrics.Print()

		if metricsOut != "" {
			exporter := sim.NewPrometheusExporter()
			exporter.Collect(engine.Metrics)
			if err := exporter.WriteTo(metricsOut); err != nil {
				logrus.Errorf("writing metrics to %s: %v", metricsOut, err)
			}
		}
	},
}

// seedDefaultProbing sets up one probe task per ordered pair of distinct
// ASes that both declare a host, using the host with the lexicographically
// smallest address in each, a deterministic stand-in for the "arbitrary
// host" the spec leaves unspecified.
func seedDefaultProbing(e *sim.Engine, topo *sim.Topology) {
	var asIDs []string
	for id := range topo.ASes {
		asIDs = append(asIDs, id)
	}
	sort.Strings(asIDs)

	firstHost := func(as *sim.AS) *sim.Host {
		var addrs []string
		for addr := range as.Hosts {
			addrs = append(addrs, addr)
		}
		if len(addrs) == 0 {
			return nil
		}
		sort.Strings(addrs)
		return as.Hosts[addrs[0]]
	}

	var tasks []*sim.ProbeTask
	for _, srcID := range asIDs {
		src := topo.ASes[srcID]
		srcHost := firstHost(src)
		if srcHost == nil {
			continue
		}
		for _, dstID := range asIDs {
			if dstID == srcID {
				continue
			}
			dst := topo.ASes[dstID]
			dstHost := firstHost(dst)
			if dstHost == nil {
				continue
			}
			tasks = append(tasks, &sim.ProbeTask{
				Source:     srcHost,
				DestAS:     dstID,
				DestAddr:   dstHost.Addr,
				IntervalMs: sim.DefaultProbeIntervalMs,
			})
		}
	}
	sim.SeedProbing(e, tasks)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&topologyPath, "topology", "", "Path to topology JSON file")
	runCmd.Flags().StringVar(&trafficPath, "traffic", "", "Path to traffic JSON file")
	runCmd.Flags().StringVar(&algoName, "algo", "shortest", "Path-selection algorithm (shortest, sapex)")
	runCmd.Flags().StringVar(&algoConfigPath, "algo-config", "", "Path to optional YAML algorithm tuning file")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario preset (S1-S6)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().Float64Var(&horizonMs, "horizon", 60000, "Simulation horizon in milliseconds")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for any stochastic traffic generation")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Optional path to write Prometheus text-format metrics")
	runCmd.Flags().BoolVar(&umccEnabledFlag, "umcc", false, "Enable UMCC shared-bottleneck suppression (sapex only)")

	rootCmd.AddCommand(runCmd)
}
