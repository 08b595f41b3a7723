package sim

import "github.com/sirupsen/logrus"

// ApplicationRegistry tracks which applications currently have packets in
// flight on which path, so a path-down event can notify every affected
// application (spec §4.10 "EventManager notifies the algorithm and any
// registered applications"). Keyed by PathSignature since paths are not
// otherwise comparable.
type ApplicationRegistry struct {
	byPath map[string][]*Application
}

// NewApplicationRegistry creates an empty registry.
func NewApplicationRegistry() *ApplicationRegistry {
	return &ApplicationRegistry{byPath: make(map[string][]*Application)}
}

// Register records that app is currently using the path identified by sig.
// Re-registering an already-registered application is a no-op.
func (r *ApplicationRegistry) Register(sig string, app *Application) {
	for _, a := range r.byPath[sig] {
		if a == app {
			return
		}
	}
	r.byPath[sig] = append(r.byPath[sig], app)
}

// Deregister removes app from the path identified by sig.
func (r *ApplicationRegistry) Deregister(sig string, app *Application) {
	list := r.byPath[sig]
	for i, a := range list {
		if a == app {
			r.byPath[sig] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// NotifyPathDown calls onPathDown on every application registered against
// sig. Each callback runs under its own panic recovery so one broken
// application cannot prevent the rest from being notified.
func (r *ApplicationRegistry) NotifyPathDown(e *Engine, sig string, now float64) {
	// onPathDown typically deregisters its own application, which mutates
	// byPath[sig]'s backing array in place; range over a snapshot so that
	// shift does not cause an adjacent application to be skipped.
	apps := make([]*Application, len(r.byPath[sig]))
	copy(apps, r.byPath[sig])
	for _, app := range apps {
		func(a *Application) {
			defer func() {
				if rec := recover(); rec != nil {
					logrus.Errorf("[%09.3f] application %s panicked handling path-down: %v", now, a.ID, rec)
				}
			}()
			a.onPathDown(e, now)
		}(app)
	}
}
