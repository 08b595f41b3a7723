package sim

import "github.com/sirupsen/logrus"

// ScheduledPathEvent is one externally-declared path_down/path_up event from
// a traffic file's event list (spec §4.6, §6).
type ScheduledPathEvent struct {
	TimeMs float64
	Kind   string // "path_down" or "path_up"
	Path   []string
}

// SeedEventManager schedules every externally-declared path event so it
// fires at its configured time (spec §4.10).
func SeedEventManager(e *Engine, events []ScheduledPathEvent) {
	for _, ev := range events {
		e.Schedule(&eventManagerFireEvent{
			BaseEvent: e.newBase(ev.TimeMs, EventTypeEventManagerFire),
			kind:      ev.Kind,
			path:      ev.Path,
		})
	}
}

type eventManagerFireEvent struct {
	BaseEvent
	kind string
	path []string
}

// Execute marks the path down or up in the active algorithm and notifies
// every application registered against it (spec §4.10). Events timestamped
// at or before the current clock fire immediately per Engine.Schedule.
func (ev *eventManagerFireEvent) Execute(e *Engine) {
	now := ev.Time()
	switch ev.kind {
	case "path_down":
		e.Selector.MarkPathDown(ev.path)
		e.Registry.NotifyPathDown(e, PathSignature(ev.path), now)
		logrus.Infof("[%09.3f] path marked down: %v", now, ev.path)
	case "path_up":
		e.Selector.MarkPathUp(ev.path)
		logrus.Infof("[%09.3f] path marked up: %v", now, ev.path)
	default:
		logrus.Warnf("[%09.3f] event manager: unknown event kind %q, ignoring", now, ev.kind)
	}
}
