// Package note holds the musical note events that drive projectile spawns and
// the playback cursor that releases them against elapsed game time.
package note

import (
	"fmt"

	"github.com/milk9111/purgatorium/common"
)

const (
	// MinPitch and MaxPitch bound the piano range A0..C8 as MIDI numbers.
	MinPitch = 21
	MaxPitch = 108

	MaxVelocity = 127
)

var pitchNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Event is a single scheduled note. Events are immutable once decoded.
type Event struct {
	Time     float64 // seconds from the start of the track
	Pitch    int
	Velocity int
	Duration float64
	NoteOn   bool
}

// NewEvent returns a note-on event with no duration.
func NewEvent(t float64, pitch, velocity int) Event {
	return Event{Time: t, Pitch: pitch, Velocity: velocity, NoteOn: true}
}

func (e Event) String() string {
	return fmt.Sprintf("%.3fs %s vel=%d", e.Time, Name(e.Pitch), e.Velocity)
}

func ClampPitch(p int) int {
	return common.ClampInt(p, MinPitch, MaxPitch)
}

func ClampVelocity(v int) int {
	return common.ClampInt(v, 0, MaxVelocity)
}

// PitchRatio maps a pitch onto [0,1]: 0 at MinPitch, 1 at MaxPitch.
func PitchRatio(p int) float64 {
	return float64(ClampPitch(p)-MinPitch) / float64(MaxPitch-MinPitch)
}

// IntensityRatio maps a velocity onto [0,1].
func IntensityRatio(v int) float64 {
	return float64(ClampVelocity(v)) / MaxVelocity
}

// Name returns the scientific pitch name, e.g. 60 -> "C4".
func Name(p int) string {
	p = common.ClampInt(p, 0, 127)
	return fmt.Sprintf("%s%d", pitchNames[p%12], p/12-1)
}
