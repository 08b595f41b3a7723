package sim

import "strings"

// LinkPacket is anything a Link can queue and deliver: it only needs to know
// its own size, so transmission delay can be computed uniformly for beacons,
// data packets, and probes (spec §4.2).
type LinkPacket interface {
	SizeBytes() int
}

// beaconWireSize is a nominal size used only for transmission-delay
// computation on the link — beacons are logical objects, not a modeled wire
// format (spec §1 Non-goals: "does not model a real wire protocol byte-for-byte").
const beaconWireSize = 100

// SegmentType classifies a beacon hop sequence as it is registered into the
// path store (spec §3, §4.5).
type SegmentType string

const (
	SegmentDown SegmentType = "down"
	SegmentCore SegmentType = "core"
	SegmentUp   SegmentType = "up"
)

// HopInfo records one router hop a beacon has traversed.
type HopInfo struct {
	ASID          string
	RouterID      string
	IngressRouter string // router id the beacon arrived from, "" at origin
	LatencyMs     float64
	BandwidthMbps float64
}

// Beacon is a path-construction message in flight (spec §3).
type Beacon struct {
	OriginAS  string
	Timestamp float64
	Hops      []HopInfo
	Segment   SegmentType
	Path      []string // router-level path accumulated so far
}

func (b *Beacon) SizeBytes() int { return beaconWireSize }

// Clone produces an independent deep copy so that forwarding a beacon to
// multiple neighbors never lets one clone's mutation affect another
// (spec §4.5, §9 "Beacon clones").
func (b *Beacon) Clone() *Beacon {
	hops := make([]HopInfo, len(b.Hops))
	copy(hops, b.Hops)
	path := make([]string, len(b.Path))
	copy(path, b.Path)
	return &Beacon{
		OriginAS:  b.OriginAS,
		Timestamp: b.Timestamp,
		Hops:      hops,
		Segment:   b.Segment,
		Path:      path,
	}
}

// ASSequence returns the ordered AS ids the beacon's hop list has visited.
func (b *Beacon) ASSequence() []string {
	seq := make([]string, len(b.Hops))
	for i, h := range b.Hops {
		seq[i] = h.ASID
	}
	return seq
}

// DataPacket models both application data and probe traffic (spec §3).
// IsProbe and Reflected together drive the router-level reflection
// behavior of spec §4.3.
type DataPacket struct {
	SourceHost *Host
	DestHost   *Host
	Path       []string
	sizeBytes  int
	Timestamp  float64
	IsProbe    bool
	ProbeID    string
	Reflected  bool // true once a probe has turned around at its terminal hop

	// App is a non-owning back-reference used only to route loss/delivery
	// feedback to the originating Application (spec §4.3 "observable via
	// feedback callback"). Nil for probes, which are engine-originated.
	App *Application
}

func (p *DataPacket) SizeBytes() int { return p.sizeBytes }

// PathSignature returns a stable string key for a router-level path, used
// throughout the path store and candidate maps as a map key since Go slices
// are not comparable.
func PathSignature(path []string) string {
	return strings.Join(path, ">")
}
