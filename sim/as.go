package sim

// AS is an autonomous system: a routing domain identified by an
// ISD-ASff00:ASN style string. Immutable after topology build (spec §3).
type AS struct {
	ID      string
	Core    bool
	Routers map[string]*Router
	Hosts   map[string]*Host
}

func newAS(id string, core bool) *AS {
	return &AS{
		ID:      id,
		Core:    core,
		Routers: make(map[string]*Router),
		Hosts:   make(map[string]*Host),
	}
}
