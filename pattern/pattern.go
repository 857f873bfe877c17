// Package pattern turns a due note into one or more spawn directions.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/note"
)

var ErrUnknownStrategy = errors.New("pattern: unknown strategy")

const (
	StrategyDirect   = "direct"
	StrategyShotgun  = "shotgun"
	StrategyPitchArc = "pitch_arc"
	StrategyScript   = "script"
)

// Context is the world state an Aimer may read when a note comes due.
type Context struct {
	Origin  cp.Vector // adversary center
	Target  cp.Vector // avatar center
	Elapsed float64
}

// Aimer returns unit spawn directions for ev. An empty result spawns nothing.
type Aimer interface {
	Aim(ctx Context, ev note.Event) []cp.Vector
}

type Config struct {
	Strategy string

	// Shotgun
	ClusterWindow float64
	SpreadStep    float64

	// Pitch arc, radians
	ArcStart float64
	ArcEnd   float64

	// Script
	ScriptName string
	Source     []byte
	Params     map[string]any
}

func DefaultConfig() Config {
	return Config{
		Strategy:      StrategyDirect,
		ClusterWindow: 0.05,
		SpreadStep:    0.2,
		ArcStart:      0.35,
		ArcEnd:        2.79,
	}
}

// New builds the Aimer named by cfg.Strategy. An empty name selects direct.
func New(cfg Config) (Aimer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Strategy)) {
	case "", StrategyDirect:
		return Direct{}, nil
	case StrategyShotgun:
		return NewShotgun(cfg.ClusterWindow, cfg.SpreadStep), nil
	case StrategyPitchArc:
		return PitchArc{Start: cfg.ArcStart, End: cfg.ArcEnd}, nil
	case StrategyScript:
		return NewScript(cfg.ScriptName, cfg.Source, cfg.Params)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}
