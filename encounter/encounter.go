// Package encounter runs one boss fight: it releases notes from the
// timeline as projectiles, moves every entity, applies the barrier and
// reports when the avatar is hit.
package encounter

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
	"github.com/milk9111/purgatorium/obj"
	"github.com/milk9111/purgatorium/pattern"
)

// Transition is the only signal the simulation sends to its host.
type Transition int

const (
	Continue Transition = iota
	GameOver
)

func (t Transition) String() string {
	if t == GameOver {
		return "game_over"
	}
	return "continue"
}

type resetter interface {
	Reset()
}

// Encounter owns every entity in a fight. All mutation happens inside
// Update, which must be called from a single goroutine.
type Encounter struct {
	cfg      Config
	timeline *note.Timeline
	aimer    pattern.Aimer

	player      *obj.Player
	adversary   *obj.Adversary
	barrier     *obj.Barrier
	projectiles []*obj.Projectile

	elapsed float64
	over    bool
	spawned int
	events  EventQueue
}

// New validates cfg and builds an encounter over events, which must already
// be sorted by time. A nil or empty events slice is a valid, empty fight.
func New(cfg Config, events []note.Event) (*Encounter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	aimer, err := pattern.New(cfg.Aim)
	if err != nil {
		return nil, fmt.Errorf("encounter: %s: %w", cfg.Name, err)
	}

	e := &Encounter{
		cfg:      cfg,
		timeline: note.NewTimeline(events, cfg.StartDelay),
		aimer:    aimer,
	}
	e.spawnEntities()
	return e, nil
}

func (e *Encounter) spawnEntities() {
	e.player = obj.NewPlayer(e.cfg.Player)
	e.player.Rect = e.cfg.Arena.Clamp(e.player.Rect)
	e.adversary = obj.NewAdversary(e.cfg.Adversary)
	e.adversary.Rect = e.cfg.Arena.Clamp(e.adversary.Rect)
	e.barrier = obj.NewBarrier(e.cfg.Barrier)
	e.projectiles = nil
}

// Reset restarts the fight from the first note with fresh entities.
func (e *Encounter) Reset() {
	if e == nil {
		return
	}
	e.spawnEntities()
	e.timeline.Rewind()
	if r, ok := e.aimer.(resetter); ok {
		r.Reset()
	}
	e.elapsed = 0
	e.over = false
	e.spawned = 0
	e.events.flush()
}

// Update advances the fight by dt seconds. Once it has returned GameOver it
// keeps returning GameOver without simulating.
func (e *Encounter) Update(dt float64, in obj.Intent) Transition {
	if e == nil {
		return Continue
	}
	if e.over {
		return GameOver
	}

	dt = e.clampDelta(dt)
	e.elapsed += dt
	arena := e.cfg.Arena

	e.player.Update(dt, in, arena)
	e.adversary.Update(dt, arena)

	if in.Deploy {
		e.requestBarrier()
	}
	e.barrier.Update(dt)

	e.timeline.Due(e.elapsed, e.spawnNote)

	target := e.player.Center()
	reference := e.adversary.Center()
	for _, p := range e.projectiles {
		before := p.BounceCount
		p.Update(dt, arena, target, reference)
		if p.BounceCount > before {
			e.emit(EventProjectileBounced, p.Center(), note.Event{})
		}
	}

	e.applyBarrier()
	e.purge()

	if e.avatarHit() {
		e.over = true
		e.emit(EventGameOver, e.player.Center(), note.Event{})
		return GameOver
	}
	return Continue
}

func (e *Encounter) clampDelta(dt float64) float64 {
	if dt < 0 || !common.Finite(dt) {
		return 0
	}
	if dt > e.cfg.MaxDeltaTime {
		return e.cfg.MaxDeltaTime
	}
	return dt
}

func (e *Encounter) requestBarrier() {
	if e.barrier.Deploy() {
		e.emit(EventBarrierDeployed, e.player.Center(), note.Event{})
		return
	}
	e.emit(EventBarrierRejected, e.player.Center(), note.Event{})
}

func (e *Encounter) spawnNote(ev note.Event) {
	if !ev.NoteOn {
		return
	}
	origin := e.adversary.Center()
	ctx := pattern.Context{
		Origin:  origin,
		Target:  e.player.Center(),
		Elapsed: e.elapsed,
	}
	for _, dir := range e.aimer.Aim(ctx, ev) {
		p := obj.NewProjectile(e.cfg.Projectile, origin, dir, ev.Pitch, ev.Velocity)
		e.projectiles = append(e.projectiles, p)
		e.spawned++
		e.emit(EventProjectileSpawned, origin, ev)
	}
}

// applyBarrier pushes anything touching an armed barrier radially away from
// the avatar.
func (e *Encounter) applyBarrier() {
	if !e.barrier.Armed() {
		return
	}
	avatar := e.player.Rect
	from := e.barrier.Origin(avatar)
	for _, p := range e.projectiles {
		if !p.Active || !e.barrier.CheckCollision(avatar, p.Rect) {
			continue
		}
		p.Deflect(from)
		e.emit(EventProjectileDeflected, p.Center(), note.Event{})
	}
	if e.barrier.CheckCollision(avatar, e.adversary.Rect) && e.adversary.Deflect(from) {
		e.emit(EventAdversaryDeflected, e.adversary.Center(), note.Event{})
	}
}

func (e *Encounter) purge() {
	writeIdx := 0
	for _, p := range e.projectiles {
		if p == nil || !p.Active {
			continue
		}
		e.projectiles[writeIdx] = p
		writeIdx++
	}
	for i := writeIdx; i < len(e.projectiles); i++ {
		e.projectiles[i] = nil
	}
	e.projectiles = e.projectiles[:writeIdx]
}

func (e *Encounter) avatarHit() bool {
	avatar := e.player.Rect
	for _, p := range e.projectiles {
		if avatar.Intersects(p.Rect) {
			return true
		}
	}
	return avatar.Intersects(e.adversary.Rect)
}

func (e *Encounter) emit(kind EventKind, at cp.Vector, ev note.Event) {
	e.events.Push(Event{Kind: kind, Time: e.elapsed, Position: at, Note: ev})
}

func (e *Encounter) Config() Config {
	if e == nil {
		return Config{}
	}
	return e.cfg
}

func (e *Encounter) Arena() common.Arena {
	if e == nil {
		return common.Arena{}
	}
	return e.cfg.Arena
}

// Elapsed is the clamped simulation time since the fight started.
func (e *Encounter) Elapsed() float64 {
	if e == nil {
		return 0
	}
	return e.elapsed
}

func (e *Encounter) Player() *obj.Player {
	if e == nil {
		return nil
	}
	return e.player
}

func (e *Encounter) Adversary() *obj.Adversary {
	if e == nil {
		return nil
	}
	return e.adversary
}

func (e *Encounter) Barrier() *obj.Barrier {
	if e == nil {
		return nil
	}
	return e.barrier
}

// Projectiles returns the live projectiles. The slice is only valid until
// the next Update.
func (e *Encounter) Projectiles() []*obj.Projectile {
	if e == nil {
		return nil
	}
	return e.projectiles
}

func (e *Encounter) Timeline() *note.Timeline {
	if e == nil {
		return nil
	}
	return e.timeline
}

// Spawned counts projectiles created since the last reset.
func (e *Encounter) Spawned() int {
	if e == nil {
		return 0
	}
	return e.spawned
}

func (e *Encounter) Over() bool {
	return e != nil && e.over
}

// Finished reports that every note has played and the arena is clear.
func (e *Encounter) Finished() bool {
	if e == nil {
		return false
	}
	return !e.over && e.timeline.Done() && len(e.projectiles) == 0
}

// Events exposes the cue queue; the host drains it once per frame.
func (e *Encounter) Events() *EventQueue {
	if e == nil {
		return nil
	}
	return &e.events
}
