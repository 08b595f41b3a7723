package sim

import (
	"fmt"
	"math"
)

// Topology owns every AS, and transitively their routers, hosts, and links
// (spec §3 "Ownership"). It is built once and is immutable afterward.
type Topology struct {
	ASes        map[string]*AS
	routersByID map[string]*Router
}

// TopologyConfig is the JSON shape of a topology file (spec §6).
type TopologyConfig map[string]ASConfig

type ASConfig struct {
	Core          bool                    `json:"core"`
	BorderRouters map[string]RouterConfig `json:"border_routers"`
	Hosts         map[string]HostConfig   `json:"hosts"`
}

type RouterConfig struct {
	Interfaces []InterfaceConfig `json:"interfaces"`
}

type InterfaceConfig struct {
	ISDAS          string  `json:"isd_as"`
	NeighborRouter string  `json:"neighbor_router"`
	LatencyMs      float64 `json:"latency_ms"`
	BandwidthMbps  float64 `json:"bandwidth_mbps"`
}

type HostConfig struct {
	Addr string `json:"addr"`
}

// BuildTopology constructs ASes, routers, hosts, and links from a parsed
// topology config, validating the cross-references spec §7 classifies as
// fatal config errors.
func BuildTopology(cfg TopologyConfig) (*Topology, error) {
	t := &Topology{ASes: make(map[string]*AS), routersByID: make(map[string]*Router)}

	for asID, asCfg := range cfg {
		as := newAS(asID, asCfg.Core)
		for routerName := range asCfg.BorderRouters {
			routerID := asID + "-" + routerName
			router := newRouter(routerID, as)
			as.Routers[routerID] = router
			t.routersByID[routerID] = router
		}
		t.ASes[asID] = as
	}

	for asID, asCfg := range cfg {
		as := t.ASes[asID]
		for hostName, hostCfg := range asCfg.Hosts {
			if hostCfg.Addr == "" {
				return nil, fmt.Errorf("host %q in AS %q has no address", hostName, asID)
			}
			host := &Host{ID: asID + "," + hostCfg.Addr, Addr: hostCfg.Addr, AS: as}
			if r := firstRouter(as); r != nil {
				host.Router = r
			}
			as.Hosts[hostCfg.Addr] = host
		}
	}

	for asID, asCfg := range cfg {
		as := t.ASes[asID]
		for routerName, routerCfg := range asCfg.BorderRouters {
			routerID := asID + "-" + routerName
			router := as.Routers[routerID]
			for _, iface := range routerCfg.Interfaces {
				neighborAS, ok := t.ASes[iface.ISDAS]
				if !ok {
					return nil, fmt.Errorf("router %q declares interface to unknown AS %q", routerID, iface.ISDAS)
				}
				neighborRouterID := iface.ISDAS + "-" + iface.NeighborRouter
				neighborRouter, ok := neighborAS.Routers[neighborRouterID]
				if !ok {
					return nil, fmt.Errorf("router %q declares dangling neighbor %q", routerID, neighborRouterID)
				}
				if !hasReciprocalInterface(cfg, iface.ISDAS, iface.NeighborRouter, asID, routerName, iface.LatencyMs, iface.BandwidthMbps) {
					continue
				}
				router.Neighbors[neighborRouterID] = newLink(router, neighborRouter, iface.LatencyMs, iface.BandwidthMbps)
			}
		}
	}

	return t, nil
}

// hasReciprocalInterface checks that neighborAS/neighborRouterName declares
// an interface back to (thisAS, thisRouterName) with matching metrics
// (spec §6 "A link exists ... iff ... declares ... with matching metrics").
func hasReciprocalInterface(cfg TopologyConfig, neighborAS, neighborRouterName, thisAS, thisRouterName string, latencyMs, bandwidthMbps float64) bool {
	nasCfg, ok := cfg[neighborAS]
	if !ok {
		return false
	}
	nrCfg, ok := nasCfg.BorderRouters[neighborRouterName]
	if !ok {
		return false
	}
	for _, iface := range nrCfg.Interfaces {
		if iface.ISDAS == thisAS && iface.NeighborRouter == thisRouterName &&
			iface.LatencyMs == latencyMs && iface.BandwidthMbps == bandwidthMbps {
			return true
		}
	}
	return false
}

// firstRouter returns a deterministic (lexicographically smallest id)
// border router for an AS, used as a host's nominal attachment point.
// Routing decisions key off AS identity, not this attachment: Router.Send
// starts forwarding at the path's first router whenever that router is in
// the same AS, so the choice is cosmetic.
func firstRouter(as *AS) *Router {
	var best *Router
	for id, r := range as.Routers {
		if best == nil || id < best.ID {
			best = r
		}
	}
	return best
}

// RouterByID resolves a globally unique router id to its Router, used to
// compute a path's bottleneck bandwidth for application pacing (spec §4.11).
func (t *Topology) RouterByID(id string) *Router {
	return t.routersByID[id]
}

// BottleneckBandwidthMbps returns the minimum link bandwidth along a
// router-level path, or 0 if the path has fewer than two hops or any link
// is missing.
func (t *Topology) BottleneckBandwidthMbps(path []string) float64 {
	if len(path) < 2 {
		return 0
	}
	bottleneck := math.MaxFloat64
	for i := 0; i < len(path)-1; i++ {
		r := t.RouterByID(path[i])
		if r == nil {
			return 0
		}
		link, ok := r.Neighbors[path[i+1]]
		if !ok {
			return 0
		}
		if link.BandwidthMbps < bottleneck {
			bottleneck = link.BandwidthMbps
		}
	}
	return bottleneck
}

// FindHost resolves a host by AS id and address (the "AS,IP" encoding used
// in traffic files, spec §6).
func (t *Topology) FindHost(asID, addr string) (*Host, error) {
	as, ok := t.ASes[asID]
	if !ok {
		return nil, fmt.Errorf("unknown AS %q", asID)
	}
	host, ok := as.Hosts[addr]
	if !ok {
		return nil, fmt.Errorf("unknown host %q in AS %q", addr, asID)
	}
	return host, nil
}

// CoreASes returns every core AS, used to seed beacon-origination tasks
// (spec §4.4).
func (t *Topology) CoreASes() []*AS {
	var out []*AS
	for _, as := range t.ASes {
		if as.Core {
			out = append(out, as)
		}
	}
	return out
}

// AllSimplePaths enumerates every router-level path between srcAS and dstAS
// by DFS over the router graph, rejecting any path that revisits an AS
// (spec §4.7 discover_paths graph-traversal mode). An AS has no path to
// itself.
func (t *Topology) AllSimplePaths(srcAS, dstAS string) [][]string {
	if srcAS == dstAS {
		return nil
	}
	src, ok := t.ASes[srcAS]
	if !ok {
		return nil
	}
	if _, ok := t.ASes[dstAS]; !ok {
		return nil
	}
	var results [][]string
	for _, startRouter := range src.Routers {
		visitedAS := map[string]bool{srcAS: true}
		path := []string{startRouter.ID}
		dfsPaths(startRouter, dstAS, visitedAS, path, &results)
	}
	return results
}

func dfsPaths(r *Router, dstAS string, visitedAS map[string]bool, path []string, results *[][]string) {
	if r.AS.ID == dstAS {
		found := make([]string, len(path))
		copy(found, path)
		*results = append(*results, found)
		return
	}
	for neighborID, link := range r.Neighbors {
		neighborAS := link.To.AS.ID
		if visitedAS[neighborAS] {
			continue
		}
		visitedAS[neighborAS] = true
		next := make([]string, len(path), len(path)+1)
		copy(next, path)
		next = append(next, neighborID)
		dfsPaths(link.To, dstAS, visitedAS, next, results)
		delete(visitedAS, neighborAS)
	}
}
