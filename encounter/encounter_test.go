package encounter

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
	"github.com/milk9111/purgatorium/obj"
	"github.com/milk9111/purgatorium/pattern"
	"github.com/milk9111/purgatorium/prefabs"
)

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// testConfig places a stationary adversary centered at adversaryCenter and
// a 20x20 avatar centered at avatarCenter.
func testConfig(adversaryCenter, avatarCenter cp.Vector) Config {
	cfg := DefaultConfig()
	cfg.Name = "test"
	cfg.Arena = common.Arena{Width: 1280, Height: 720}
	cfg.Adversary = obj.AdversaryConfig{
		Width:      40,
		Height:     40,
		Spawn:      adversaryCenter.Sub(cp.Vector{X: 20, Y: 20}),
		Stationary: true,
	}
	cfg.Player.Width = 20
	cfg.Player.Height = 20
	cfg.Player.Speed = 300
	cfg.Player.Spawn = avatarCenter.Sub(cp.Vector{X: 10, Y: 10})
	cfg.Aim = pattern.Config{Strategy: pattern.StrategyDirect}
	return cfg
}

func inject(e *Encounter, center, dir cp.Vector) *obj.Projectile {
	p := obj.NewProjectile(e.cfg.Projectile, center, dir, note.MaxPitch, 0)
	e.projectiles = append(e.projectiles, p)
	return p
}

func TestScenarioSpawnOnFirstTick(t *testing.T) {
	origin := cp.Vector{X: 610, Y: 30}
	target := cp.Vector{X: 630, Y: 350}
	e, err := New(testConfig(origin, target), []note.Event{note.NewEvent(0, 60, 100)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := e.Update(0, obj.Intent{}); got != Continue {
		t.Fatalf("Update = %v, want continue", got)
	}

	ps := e.Projectiles()
	if len(ps) != 1 {
		t.Fatalf("got %d projectiles, want 1", len(ps))
	}
	want := target.Sub(origin).Normalize()
	got := ps[0].Velocity.Normalize()
	if !near(got.X, want.X, 1e-9) || !near(got.Y, want.Y, 1e-9) {
		t.Fatalf("projectile direction = %v, want %v", got, want)
	}
	if ps[0].Velocity.Length() <= 0 {
		t.Fatalf("projectile has no speed")
	}
	if c := ps[0].Center(); !near(c.X, origin.X, 1e-9) || !near(c.Y, origin.Y, 1e-9) {
		t.Fatalf("projectile spawned at %v, want %v", c, origin)
	}

	evs := e.Events().Drain()
	if len(evs) != 1 || evs[0].Kind != EventProjectileSpawned || evs[0].Note.Pitch != 60 {
		t.Fatalf("events = %+v", evs)
	}
}

func TestScenarioHitEndsEncounter(t *testing.T) {
	avatar := cp.Vector{X: 610, Y: 410}
	e, err := New(testConfig(cp.Vector{X: 40, Y: 40}, avatar), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := inject(e, cp.Vector{X: 610, Y: 300}, common.Down)

	want := []Transition{Continue, Continue, GameOver}
	for i, w := range want {
		got := e.Update(0.1, obj.Intent{})
		overlap := e.Player().Intersects(p.Rect)
		if got != w {
			t.Fatalf("tick %d: got %v, want %v (overlap=%v)", i, got, w, overlap)
		}
		if (got == GameOver) != overlap {
			t.Fatalf("tick %d: result %v disagrees with overlap %v", i, got, overlap)
		}
	}

	snapshot := p.Rect
	if got := e.Update(0.1, obj.Intent{Left: true}); got != GameOver {
		t.Fatalf("encounter not terminal after game over: %v", got)
	}
	if p.Rect != snapshot {
		t.Fatalf("simulation advanced after game over")
	}

	var sawGameOver bool
	for _, ev := range e.Events().Drain() {
		if ev.Kind == EventGameOver {
			sawGameOver = true
		}
	}
	if !sawGameOver {
		t.Fatalf("no game_over event emitted")
	}
}

func TestScenarioBarrierDeflects(t *testing.T) {
	avatar := cp.Vector{X: 610, Y: 410}
	cfg := testConfig(cp.Vector{X: 40, Y: 40}, avatar)
	cfg.Barrier = obj.DefaultBarrierConfig()
	cfg.Barrier.RadiusMultiplier = 1.5
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := e.Update(0.25, obj.Intent{Deploy: true}); got != Continue {
		t.Fatalf("deploy tick = %v", got)
	}
	if !e.Barrier().Armed() {
		t.Fatalf("barrier not armed after deploy tick: state %v", e.Barrier().State())
	}

	p := inject(e, cp.Vector{X: 610, Y: 360}, common.Down)
	speed := p.Speed()

	if got := e.Update(0.05, obj.Intent{}); got != Continue {
		t.Fatalf("deflection tick = %v, want continue", got)
	}
	if p.Velocity.Y >= 0 || !near(p.Velocity.X, 0, 1e-9) {
		t.Fatalf("projectile not pushed away from the avatar: %v", p.Velocity)
	}
	if !near(p.Velocity.Length(), speed, 1e-9) {
		t.Fatalf("deflection changed speed: %v -> %v", speed, p.Velocity.Length())
	}

	var kinds []EventKind
	for _, ev := range e.Events().Drain() {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) != 2 || kinds[0] != EventBarrierDeployed || kinds[1] != EventProjectileDeflected {
		t.Fatalf("events = %v", kinds)
	}
}

func TestBarrierDeflectsAdversary(t *testing.T) {
	cfg := testConfig(cp.Vector{X: 610, Y: 340}, cp.Vector{X: 610, Y: 410})
	cfg.Adversary.Stationary = false
	cfg.Adversary.Speed = 100
	cfg.Adversary.Direction = common.Down
	cfg.Barrier.RadiusMultiplier = 2
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	e.Update(0.25, obj.Intent{Deploy: true})
	if e.Adversary().Velocity.Y >= 0 {
		t.Fatalf("adversary still heading into the barrier: %v", e.Adversary().Velocity)
	}
	var deflected bool
	for _, ev := range e.Events().Drain() {
		if ev.Kind == EventAdversaryDeflected {
			deflected = true
		}
	}
	if !deflected {
		t.Fatalf("no adversary_deflected event")
	}
}

func TestAdversaryContactEndsEncounter(t *testing.T) {
	e, err := New(testConfig(cp.Vector{X: 600, Y: 400}, cp.Vector{X: 610, Y: 410}), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := e.Update(0.016, obj.Intent{}); got != GameOver {
		t.Fatalf("overlapping adversary: got %v, want game over", got)
	}
}

func TestTimelineOrderAndFinish(t *testing.T) {
	cfg := testConfig(cp.Vector{X: 640, Y: 30}, cp.Vector{X: 640, Y: 650})
	cfg.Aim = pattern.Config{Strategy: pattern.StrategyPitchArc, ArcStart: -math.Pi / 2, ArcEnd: -math.Pi / 2}
	cfg.Projectile.MaxBounces = 0

	events := []note.Event{
		note.NewEvent(0.0, 40, 80),
		note.NewEvent(0.5, 50, 80),
		note.NewEvent(0.5, 55, 80),
		note.NewEvent(1.0, 70, 80),
		{Time: 1.1, Pitch: 70, Velocity: 80, NoteOn: false},
	}
	e, err := New(cfg, events)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var pitches []int
	var times []float64
	for i := 0; i < 40; i++ {
		if got := e.Update(0.1, obj.Intent{}); got != Continue {
			t.Fatalf("tick %d: unexpected %v", i, got)
		}
		for _, ev := range e.Events().Drain() {
			if ev.Kind == EventProjectileSpawned {
				pitches = append(pitches, ev.Note.Pitch)
				times = append(times, ev.Time)
			}
		}
	}

	want := []int{40, 50, 55, 70}
	if len(pitches) != len(want) {
		t.Fatalf("spawned %v, want %v", pitches, want)
	}
	for i := range want {
		if pitches[i] != want[i] {
			t.Fatalf("spawn %d pitch = %d, want %d", i, pitches[i], want[i])
		}
		if i > 0 && times[i] < times[i-1] {
			t.Fatalf("spawns out of order: %v", times)
		}
		if times[i]+1e-9 < events[i].Time {
			t.Fatalf("note %d released early at %v", i, times[i])
		}
	}
	if e.Spawned() != 4 {
		t.Fatalf("spawned = %d, want 4", e.Spawned())
	}
	if !e.Finished() {
		t.Fatalf("encounter not finished: %d projectiles, timeline done=%v", len(e.Projectiles()), e.Timeline().Done())
	}
}

func TestStartDelay(t *testing.T) {
	cfg := testConfig(cp.Vector{X: 640, Y: 30}, cp.Vector{X: 640, Y: 650})
	cfg.StartDelay = 1
	e, err := New(cfg, []note.Event{note.NewEvent(0, 60, 100)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 4; i++ {
		e.Update(0.2, obj.Intent{})
	}
	if e.Spawned() != 0 {
		t.Fatalf("note released before the start delay")
	}
	e.Update(0.25, obj.Intent{})
	if e.Spawned() != 1 {
		t.Fatalf("note not released after the start delay (elapsed %v)", e.Elapsed())
	}
}

func TestDeltaTimeClamp(t *testing.T) {
	cfg := testConfig(cp.Vector{X: 640, Y: 30}, cp.Vector{X: 640, Y: 650})
	e, err := New(cfg, []note.Event{note.NewEvent(0.3, 60, 100)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	e.Update(10, obj.Intent{})
	if e.Elapsed() != DefaultMaxDeltaTime {
		t.Fatalf("elapsed = %v, want %v", e.Elapsed(), DefaultMaxDeltaTime)
	}
	if e.Spawned() != 0 {
		t.Fatalf("clamped tick released a note scheduled later")
	}

	e.Update(-1, obj.Intent{})
	e.Update(math.NaN(), obj.Intent{})
	if e.Elapsed() != DefaultMaxDeltaTime {
		t.Fatalf("invalid dt advanced time to %v", e.Elapsed())
	}
}

func TestBarrierRejectedWhenExhausted(t *testing.T) {
	cfg := testConfig(cp.Vector{X: 640, Y: 30}, cp.Vector{X: 640, Y: 650})
	cfg.Barrier.MaxUses = 0
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	e.Update(0.1, obj.Intent{Deploy: true})
	evs := e.Events().Drain()
	if len(evs) != 1 || evs[0].Kind != EventBarrierRejected {
		t.Fatalf("events = %+v", evs)
	}
	if e.Barrier().UsesRemaining() != 0 || e.Barrier().State() != obj.BarrierIdle {
		t.Fatalf("exhausted barrier changed state")
	}
}

func TestReset(t *testing.T) {
	avatar := cp.Vector{X: 610, Y: 410}
	e, err := New(testConfig(cp.Vector{X: 40, Y: 40}, avatar), []note.Event{note.NewEvent(0, 60, 100)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	inject(e, avatar, common.Down)
	if e.Update(0.01, obj.Intent{}) != GameOver {
		t.Fatalf("expected game over")
	}

	e.Reset()
	if e.Over() || e.Elapsed() != 0 || len(e.Projectiles()) != 0 || e.Timeline().Cursor() != 0 {
		t.Fatalf("reset left state behind")
	}
	if e.Events().Len() != 0 {
		t.Fatalf("reset kept queued events")
	}
	if c := e.Player().Center(); c != avatar {
		t.Fatalf("player not respawned: %v", c)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"arena":      func(c *Config) { c.Arena.Width = 0 },
		"player":     func(c *Config) { c.Player.Speed = -1 },
		"projectile": func(c *Config) { c.Projectile.BaseSize = 0 },
		"delta":      func(c *Config) { c.MaxDeltaTime = 0 },
		"bounces":    func(c *Config) { c.Projectile.MaxBounces = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Aim.Strategy = "nope"
	if _, err := New(cfg, nil); !errors.Is(err, pattern.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestConfigFromPresets(t *testing.T) {
	for _, name := range prefabs.Presets() {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("validate: %v", err)
			}
			if _, err := New(cfg, nil); err != nil {
				t.Fatalf("new: %v", err)
			}
		})
	}
}

func TestConfigFromSpecOverrides(t *testing.T) {
	zero := 0
	spec := &prefabs.EncounterSpec{
		Name:  "custom",
		Arena: prefabs.ArenaSpec{Width: 800},
		Projectile: prefabs.ProjectileSpec{
			MaxBounces:   &zero,
			Motion:       "homing",
			SpeedScaling: "direct",
		},
		Barrier:  prefabs.BarrierSpec{MaxUses: &zero},
		Playback: prefabs.PlaybackSpec{StartDelay: 1.5, Track: "song.json"},
		Aim:      prefabs.AimSpec{Strategy: "script", Script: "spiral", Params: map[string]any{"arms": 4}},
	}

	cfg, err := ConfigFromSpec(spec)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if cfg.Arena.Width != 800 || cfg.Arena.Height != 720 {
		t.Fatalf("arena = %+v", cfg.Arena)
	}
	if cfg.Projectile.MaxBounces != 0 || cfg.Projectile.Motion != obj.MotionHoming || cfg.Projectile.SpeedScaling != obj.ScaleDirect {
		t.Fatalf("projectile = %+v", cfg.Projectile)
	}
	if cfg.Barrier.MaxUses != 0 {
		t.Fatalf("barrier max uses = %d, want 0", cfg.Barrier.MaxUses)
	}
	if cfg.StartDelay != 1.5 || cfg.Track != "song.json" {
		t.Fatalf("playback = %v %q", cfg.StartDelay, cfg.Track)
	}
	if len(cfg.Aim.Source) == 0 {
		t.Fatalf("script source not loaded")
	}

	spec.Projectile.Motion = "wobble"
	if _, err := ConfigFromSpec(spec); !errors.Is(err, obj.ErrUnknownMotion) {
		t.Fatalf("expected ErrUnknownMotion, got %v", err)
	}

	spec.Projectile.Motion = ""
	spec.Aim.Script = ""
	if _, err := ConfigFromSpec(spec); err == nil {
		t.Fatalf("expected error for script strategy without a script")
	}
}

func TestFanPresetSpreadsLoudNotes(t *testing.T) {
	cfg, err := LoadConfig("fan")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Aim.Strategy != pattern.StrategyScript || cfg.Aim.ScriptName != "aimed_fan" {
		t.Fatalf("aim = %q %q", cfg.Aim.Strategy, cfg.Aim.ScriptName)
	}
	cfg.StartDelay = 0

	e, err := New(cfg, []note.Event{
		note.NewEvent(0, 60, note.MaxVelocity),
		note.NewEvent(0.5, 60, 0),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	e.Update(0.01, obj.Intent{})
	if got := e.Spawned(); got != 5 {
		t.Fatalf("loud note spawned %d projectiles, want 5", got)
	}

	for i := 0; i < 5; i++ {
		if e.Update(0.1, obj.Intent{}) != Continue {
			t.Fatalf("unexpected game over at %.2fs", e.Elapsed())
		}
	}
	if got := e.Spawned(); got != 6 {
		t.Fatalf("quiet note spawned %d projectiles, want 1", got-5)
	}
}
