// Package sim provides the core discrete-event simulation engine for
// inter-domain path-construction beaconing.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go, clock.go: Event interface, EventHeap, and the scheduler's run loop
//   - topology.go, as.go, router.go, host.go, link.go: the network fabric
//   - protocol.go, packet.go: beacon origination, propagation, registration
//   - pathstore.go, selector.go: the path store and the PathSelector contract
//   - application.go, registry.go, eventmanager.go: traffic and failure injection
//
// # Architecture
//
// The sim package defines the kernel and the PathSelector interface plus one
// reference implementation (ShortestPath). The more elaborate Sapex
// algorithm lives in sim/sapex, which depends on sim but is never depended
// on by it — the same one-directional layering the teacher uses between its
// core sim package and sim/policy, sim/kv, sim/latency.
//
// # Key interfaces
//
//   - Event: anything the scheduler can run at a point in time
//   - PathSelector: select_path / availability / probe / feedback contract
//     any path-selection algorithm must satisfy (spec §4.7)
package sim
