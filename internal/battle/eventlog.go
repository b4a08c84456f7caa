package battle

// EventLog is the append-only record of everything that happened in a
// battle. Clients poll it by position; entries are never removed or reordered.
type EventLog struct {
	events Events
}

func NewEventLog(events ...BattleEvent) *EventLog {
	return &EventLog{events: append(Events(nil), events...)}
}

func (l *EventLog) Append(events ...BattleEvent) {
	l.events = append(l.events, events...)
}

func (l *EventLog) Len() int { return len(l.events) }

// Since returns a copy of the events at positions >= pos. Out of range
// positions yield an empty slice.
func (l *EventLog) Since(pos int) Events {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(l.events) {
		return Events{}
	}
	return append(Events(nil), l.events[pos:]...)
}

func (l *EventLog) All() Events { return l.Since(0) }
