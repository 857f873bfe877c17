package note

import "testing"

func TestTimelineReleasesInOrder(t *testing.T) {
	tl := NewTimeline([]Event{
		NewEvent(0.5, 60, 100),
		NewEvent(1.0, 62, 100),
		NewEvent(1.0, 64, 100),
		NewEvent(2.0, 65, 100),
	}, 0)

	var got []int
	for _, elapsed := range []float64{0.1, 0.5, 0.9, 1.5, 3.0, 4.0} {
		tl.Due(elapsed, func(ev Event) {
			got = append(got, ev.Pitch)
		})
	}

	want := []int{60, 62, 64, 65}
	if len(got) != len(want) {
		t.Fatalf("released %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d pitch = %d, want %d", i, got[i], want[i])
		}
	}
	if !tl.Done() {
		t.Fatalf("expected timeline to be done")
	}
}

func TestTimelineStartDelay(t *testing.T) {
	tl := NewTimeline([]Event{NewEvent(0, 60, 64)}, 2)

	if _, ok := tl.PeekDue(1.999); ok {
		t.Fatalf("event released before start delay elapsed")
	}
	ev, ok := tl.PeekDue(2)
	if !ok {
		t.Fatalf("event not due exactly at start delay")
	}
	if ev.Pitch != 60 {
		t.Fatalf("pitch = %d, want 60", ev.Pitch)
	}
	if got := tl.Duration(); got != 2 {
		t.Fatalf("Duration = %v, want 2", got)
	}
}

func TestTimelinePeekDoesNotAdvance(t *testing.T) {
	tl := NewTimeline([]Event{NewEvent(0, 60, 64), NewEvent(0, 61, 64)}, 0)

	for i := 0; i < 3; i++ {
		ev, ok := tl.PeekDue(10)
		if !ok || ev.Pitch != 60 {
			t.Fatalf("peek %d = %v,%v, want pitch 60", i, ev, ok)
		}
	}
	if tl.Cursor() != 0 {
		t.Fatalf("cursor moved on peek")
	}
}

func TestTimelineExhausted(t *testing.T) {
	tl := NewTimeline([]Event{NewEvent(0, 60, 64)}, 0)
	tl.Advance()
	tl.Advance()
	tl.Advance()

	if tl.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", tl.Cursor())
	}
	if _, ok := tl.PeekDue(100); ok {
		t.Fatalf("exhausted timeline released an event")
	}
	if tl.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", tl.Remaining())
	}

	tl.Rewind()
	if _, ok := tl.PeekDue(0); !ok {
		t.Fatalf("rewound timeline should release the first event")
	}
}

func TestTimelineEmptyAndNil(t *testing.T) {
	var nilTL *Timeline
	if _, ok := nilTL.PeekDue(1); ok {
		t.Fatalf("nil timeline released an event")
	}
	nilTL.Advance()
	if !nilTL.Done() {
		t.Fatalf("nil timeline should report done")
	}

	empty := NewTimeline(nil, -3)
	if !empty.Done() || empty.Duration() != 0 || empty.StartDelay() != 0 {
		t.Fatalf("unexpected empty timeline state")
	}
}

func TestTimelineCopiesInput(t *testing.T) {
	events := []Event{NewEvent(0, 60, 64)}
	tl := NewTimeline(events, 0)
	events[0].Pitch = 100

	ev, _ := tl.PeekDue(0)
	if ev.Pitch != 60 {
		t.Fatalf("timeline observed caller mutation: pitch = %d", ev.Pitch)
	}
}

func TestPitchAndIntensityDomains(t *testing.T) {
	tests := []struct {
		name      string
		pitch     int
		velocity  int
		wantPitch float64
		wantIntn  float64
	}{
		{name: "low", pitch: MinPitch, velocity: 0, wantPitch: 0, wantIntn: 0},
		{name: "high", pitch: MaxPitch, velocity: MaxVelocity, wantPitch: 1, wantIntn: 1},
		{name: "below_range", pitch: 5, velocity: -20, wantPitch: 0, wantIntn: 0},
		{name: "above_range", pitch: 200, velocity: 999, wantPitch: 1, wantIntn: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PitchRatio(tc.pitch); got != tc.wantPitch {
				t.Fatalf("PitchRatio(%d) = %v, want %v", tc.pitch, got, tc.wantPitch)
			}
			if got := IntensityRatio(tc.velocity); got != tc.wantIntn {
				t.Fatalf("IntensityRatio(%d) = %v, want %v", tc.velocity, got, tc.wantIntn)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := map[int]string{
		21:  "A0",
		60:  "C4",
		61:  "C#4",
		108: "C8",
	}
	for pitch, want := range tests {
		if got := Name(pitch); got != want {
			t.Fatalf("Name(%d) = %q, want %q", pitch, got, want)
		}
	}
}
