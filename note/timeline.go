package note

// Timeline releases time-sorted events exactly once, in order, through a
// single forward-only cursor. Input order is not verified; callers must hand
// over events sorted by Time.
type Timeline struct {
	events     []Event
	cursor     int
	startDelay float64
}

// NewTimeline copies events so later changes to the caller's slice cannot
// reorder playback. A negative startDelay is treated as zero.
func NewTimeline(events []Event, startDelay float64) *Timeline {
	if startDelay < 0 {
		startDelay = 0
	}
	copied := append([]Event(nil), events...)
	return &Timeline{events: copied, startDelay: startDelay}
}

// PeekDue returns the event under the cursor if its scheduled time plus the
// start delay is at or before elapsed.
func (t *Timeline) PeekDue(elapsed float64) (Event, bool) {
	if t == nil || t.cursor >= len(t.events) {
		return Event{}, false
	}
	ev := t.events[t.cursor]
	if ev.Time+t.startDelay > elapsed {
		return Event{}, false
	}
	return ev, true
}

// Advance moves the cursor forward by exactly one event. It is a no-op once
// the timeline is exhausted.
func (t *Timeline) Advance() {
	if t == nil || t.cursor >= len(t.events) {
		return
	}
	t.cursor++
}

// Due pops every event that is due at elapsed and calls fn for each, in order.
func (t *Timeline) Due(elapsed float64, fn func(Event)) int {
	n := 0
	for {
		ev, ok := t.PeekDue(elapsed)
		if !ok {
			return n
		}
		t.Advance()
		n++
		if fn != nil {
			fn(ev)
		}
	}
}

func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

func (t *Timeline) Cursor() int {
	if t == nil {
		return 0
	}
	return t.cursor
}

func (t *Timeline) Remaining() int {
	return t.Len() - t.Cursor()
}

func (t *Timeline) Done() bool {
	return t.Remaining() <= 0
}

func (t *Timeline) StartDelay() float64 {
	if t == nil {
		return 0
	}
	return t.startDelay
}

// Duration is the elapsed time at which the last event becomes due.
func (t *Timeline) Duration() float64 {
	if t == nil || len(t.events) == 0 {
		return 0
	}
	return t.events[len(t.events)-1].Time + t.startDelay
}

// Rewind moves the cursor back to the first event.
func (t *Timeline) Rewind() {
	if t == nil {
		return
	}
	t.cursor = 0
}
