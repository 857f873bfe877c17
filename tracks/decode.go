// Package tracks decodes note data files into time-sorted note events.
package tracks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
)

var ErrEmptyTrack = errors.New("tracks: empty input")

const defaultVelocity = 100

type document struct {
	Events []record `json:"events"`
}

// record covers both the MIDI extractor output and the spectrogram
// extractor output.
type record struct {
	Time       *float64 `json:"time"`
	MidiNumber *float64 `json:"midi_number"`
	Midi       *float64 `json:"midi"`
	Pitch      *float64 `json:"pitch"`
	Velocity   *float64 `json:"velocity"`
	Magnitude  *float64 `json:"magnitude"`
	Duration   float64  `json:"duration"`
	NoteOn     *bool    `json:"note_on"`
	NoteName   string   `json:"note_name"`
	Note       string   `json:"note"`
	Frequency  float64  `json:"frequency"`
}

// Decode parses a track document. It accepts either {"events":[...]} or a bare
// array of records. Records without a usable time or pitch are dropped.
func Decode(data []byte) ([]note.Event, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyTrack
	}

	var records []record
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("unmarshal track: %w", err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal track: %w", err)
		}
		records = doc.Events
	}

	events := make([]note.Event, 0, len(records))
	dropped := 0
	for _, r := range records {
		ev, ok := r.event()
		if !ok {
			dropped++
			continue
		}
		events = append(events, ev)
	}
	if dropped > 0 {
		log.Printf("tracks: dropped %d of %d records", dropped, len(records))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

func (r record) event() (note.Event, bool) {
	if r.Time == nil || !common.Finite(*r.Time) || *r.Time < 0 {
		return note.Event{}, false
	}

	var pitch *float64
	switch {
	case r.MidiNumber != nil:
		pitch = r.MidiNumber
	case r.Midi != nil:
		pitch = r.Midi
	case r.Pitch != nil:
		pitch = r.Pitch
	}
	if pitch == nil || !common.Finite(*pitch) {
		return note.Event{}, false
	}

	velocity := defaultVelocity
	switch {
	case r.Velocity != nil && common.Finite(*r.Velocity):
		velocity = int(math.Round(*r.Velocity))
	case r.Magnitude != nil && common.Finite(*r.Magnitude):
		velocity = int(math.Round(*r.Magnitude * note.MaxVelocity))
	}

	duration := r.Duration
	if !common.Finite(duration) || duration < 0 {
		duration = 0
	}

	on := true
	if r.NoteOn != nil {
		on = *r.NoteOn
	}

	return note.Event{
		Time:     *r.Time,
		Pitch:    note.ClampPitch(int(math.Round(*pitch))),
		Velocity: note.ClampVelocity(velocity),
		Duration: duration,
		NoteOn:   on,
	}, true
}
