package pattern

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
)

var errNoResult = errors.New("aim returned no angles")

// aimDispatchScript is appended to every aim script. Scripts define
// `aim := func(ctx) {...}` returning an angle, an array of angles, or
// direction maps with x and y keys.
const aimDispatchScript = `
__result = aim(__ctx)
`

// Script delegates aiming to a tengo script compiled once at construction.
// Runtime failures are logged and the note is aimed directly instead.
type Script struct {
	name     string
	compiled *tengo.Compiled
	params   tengo.Object
	state    *tengo.Map
}

func NewScript(name string, src []byte, params map[string]any) (*Script, error) {
	if name == "" {
		name = "inline"
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, fmt.Errorf("pattern: script %s: empty source", name)
	}

	if params == nil {
		params = map[string]any{}
	}
	paramsObj, err := tengo.FromInterface(params)
	if err != nil {
		return nil, fmt.Errorf("pattern: script %s params: %w", name, err)
	}

	full := string(src) + "\n" + aimDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__ctx", map[string]any{})
	_ = script.Add("__result", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pattern: compile %s: %w", name, err)
	}

	return &Script{
		name:     name,
		compiled: compiled,
		params:   paramsObj,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Script) Aim(ctx Context, ev note.Event) []cp.Vector {
	if s == nil || s.compiled == nil {
		return Direct{}.Aim(ctx, ev)
	}
	dirs, err := s.run(ctx, ev)
	if err != nil {
		log.Printf("pattern: script=%s note=%s error: %v", s.name, ev, err)
		return Direct{}.Aim(ctx, ev)
	}
	return dirs
}

// Reset clears the script's persistent ctx.state map.
func (s *Script) Reset() {
	if s == nil {
		return
	}
	s.state = &tengo.Map{Value: map[string]tengo.Object{}}
}

// run executes the script once. Panics raised inside the VM, such as an
// integer division by zero, are returned as errors.
func (s *Script) run(ctx Context, ev note.Event) (dirs []cp.Vector, err error) {
	defer func() {
		if r := recover(); r != nil {
			dirs = nil
			err = fmt.Errorf("pattern: script %s panic: %v", s.name, r)
		}
	}()

	if err := s.compiled.Set("__ctx", s.buildContext(ctx, ev)); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("__result", nil); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, err
	}
	return directions(objectToAny(s.compiled.Get("__result").Object()))
}

func (s *Script) buildContext(ctx Context, ev note.Event) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"pitch":        &tengo.Int{Value: int64(ev.Pitch)},
		"velocity":     &tengo.Int{Value: int64(ev.Velocity)},
		"time":         &tengo.Float{Value: ev.Time},
		"duration":     &tengo.Float{Value: ev.Duration},
		"elapsed":      &tengo.Float{Value: ctx.Elapsed},
		"pitch_ratio":  &tengo.Float{Value: note.PitchRatio(ev.Pitch)},
		"intensity":    &tengo.Float{Value: note.IntensityRatio(ev.Velocity)},
		"origin":       vectorObject(ctx.Origin),
		"target":       vectorObject(ctx.Target),
		"target_angle": &tengo.Float{Value: AngleTo(ctx.Origin, ctx.Target)},
		"params":       s.params,
		"state":        s.state,
	}
	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: v.X},
		"y": &tengo.Float{Value: v.Y},
	}}
}

func directions(result any) ([]cp.Vector, error) {
	switch v := result.(type) {
	case nil:
		return nil, errNoResult
	case []any:
		out := make([]cp.Vector, 0, len(v))
		for i, item := range v {
			dir, err := direction(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, dir)
		}
		return out, nil
	default:
		dir, err := direction(v)
		if err != nil {
			return nil, err
		}
		return []cp.Vector{dir}, nil
	}
}

func direction(v any) (cp.Vector, error) {
	switch val := v.(type) {
	case float64:
		return cp.ForAngle(val), nil
	case int:
		return cp.ForAngle(float64(val)), nil
	case map[string]any:
		x, okX := toFloat(val["x"])
		y, okY := toFloat(val["y"])
		if !okX || !okY {
			return cp.Vector{}, fmt.Errorf("direction map needs numeric x and y")
		}
		return common.Normalize(cp.Vector{X: x, Y: y}, common.Down), nil
	}
	return cp.Vector{}, fmt.Errorf("unsupported aim result %T", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
