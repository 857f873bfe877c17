package obj

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/note"
)

var (
	ErrUnknownMotion       = errors.New("obj: unknown motion")
	ErrUnknownSpeedScaling = errors.New("obj: unknown speed scaling")
)

// Motion selects the steering a projectile applies on top of straight travel.
type Motion int

const (
	MotionLinear Motion = iota
	MotionArc
	MotionHoming
)

func (m Motion) String() string {
	switch m {
	case MotionLinear:
		return "linear"
	case MotionArc:
		return "arc"
	case MotionHoming:
		return "homing"
	default:
		return fmt.Sprintf("motion(%d)", int(m))
	}
}

func ParseMotion(s string) (Motion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return MotionLinear, nil
	case "arc":
		return MotionArc, nil
	case "homing":
		return MotionHoming, nil
	}
	return MotionLinear, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}

// SpeedScaling picks how base speed follows the size scale factor.
type SpeedScaling int

const (
	// ScaleInverse makes big (low) notes slow and small (high) notes fast.
	ScaleInverse SpeedScaling = iota
	// ScaleDirect makes big notes fast.
	ScaleDirect
)

func (s SpeedScaling) String() string {
	if s == ScaleDirect {
		return "direct"
	}
	return "inverse"
}

func ParseSpeedScaling(s string) (SpeedScaling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inverse":
		return ScaleInverse, nil
	case "direct":
		return ScaleDirect, nil
	}
	return ScaleInverse, fmt.Errorf("%w: %q", ErrUnknownSpeedScaling, s)
}

type ProjectileConfig struct {
	BaseSize       float64
	ReferenceSpeed float64
	MaxScale       float64
	MinScale       float64
	SpeedScaling   SpeedScaling

	BoostScale     float64
	BoostDecayRate float64
	BoostThreshold float64

	MaxBounces  int
	MaxLifetime float64 // seconds, 0 disables
	Motion      Motion

	ArcAmplitude float64 // perpendicular offset as a fraction of speed
	ArcFrequency float64 // oscillations per second

	HomingMinTurn   float64 // radians per second
	HomingMaxTurn   float64
	HomingRange     float64
	HomingEasePower float64

	ColorScheme float64 // hue in degrees
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		BaseSize:        10,
		ReferenceSpeed:  120,
		MaxScale:        3,
		MinScale:        1,
		SpeedScaling:    ScaleInverse,
		BoostScale:      1,
		BoostDecayRate:  4,
		BoostThreshold:  0.5,
		MaxBounces:      2,
		Motion:          MotionLinear,
		ArcAmplitude:    0.5,
		ArcFrequency:    1,
		HomingMinTurn:   0.25,
		HomingMaxTurn:   2.5,
		HomingRange:     600,
		HomingEasePower: 3,
		ColorScheme:     200,
	}
}

// Scale returns the size scale factor for pitch: MaxScale at the lowest
// pitch down to MinScale at the highest.
func (c ProjectileConfig) Scale(pitch int) float64 {
	return common.Lerp(c.MaxScale, c.MinScale, note.PitchRatio(pitch))
}

func (c ProjectileConfig) BaseSpeed(pitch int) float64 {
	scale := c.Scale(pitch)
	if c.SpeedScaling == ScaleDirect {
		return c.ReferenceSpeed * scale
	}
	return c.ReferenceSpeed * (c.MaxScale + c.MinScale - scale)
}

// Projectile is a single note-spawned bullet. Its box is the collision shape.
type Projectile struct {
	common.Rect

	Velocity    cp.Vector
	BaseSpeed   float64
	Boost       float64
	BounceCount int
	MaxBounces  int
	Active      bool
	Motion      Motion
	Age         float64

	Pitch     int
	Intensity int

	// Presentation only.
	Hue        float64
	Saturation float64
	Value      float64
	Alpha      float64

	cfg         ProjectileConfig
	boost0      float64
	boostSpent  bool
	heading     cp.Vector
	arcPerp     cp.Vector
	arcProgress float64
}

// NewProjectile spawns a projectile centered on origin travelling along
// direction. A degenerate direction falls back to straight down.
func NewProjectile(cfg ProjectileConfig, origin, direction cp.Vector, pitch, intensity int) *Projectile {
	pitch = note.ClampPitch(pitch)
	intensity = note.ClampVelocity(intensity)

	size := cfg.BaseSize * cfg.Scale(pitch)
	base := cfg.BaseSpeed(pitch)
	heading := common.Normalize(direction, common.Down)

	p := &Projectile{
		Rect:       common.RectAround(origin, size, size),
		BaseSpeed:  base,
		MaxBounces: cfg.MaxBounces,
		Active:     true,
		Motion:     cfg.Motion,
		Pitch:      pitch,
		Intensity:  intensity,
		cfg:        cfg,
		boost0:     cfg.BoostScale * note.IntensityRatio(intensity) * base,
		heading:    heading,
		arcPerp:    common.Perpendicular(heading),
	}
	p.applyTint()
	p.decayBoost()
	p.Velocity = heading.Mult(p.Speed())
	return p
}

// NewAimedProjectile spawns a projectile at origin aimed at target.
func NewAimedProjectile(cfg ProjectileConfig, origin, target cp.Vector, pitch, intensity int) *Projectile {
	return NewProjectile(cfg, origin, common.Direction(origin, target, common.Down), pitch, intensity)
}

// Speed is the current travel speed: base plus the decaying boost.
func (p *Projectile) Speed() float64 {
	if p == nil {
		return 0
	}
	return p.BaseSpeed + p.Boost
}

func (p *Projectile) Heading() cp.Vector {
	if p == nil {
		return common.Down
	}
	return p.heading
}

// Update advances the projectile by dt. target is the avatar center and
// reference the adversary center; only homing motion reads them.
func (p *Projectile) Update(dt float64, arena common.Arena, target, reference cp.Vector) {
	if p == nil || !p.Active {
		return
	}
	if dt < 0 || !common.Finite(dt) {
		dt = 0
	}

	p.Age += dt
	p.decayBoost()
	speed := p.Speed()

	switch p.Motion {
	case MotionArc:
		p.arcProgress += dt
		wave := math.Sin(2 * math.Pi * p.cfg.ArcFrequency * p.arcProgress)
		p.Velocity = p.heading.Mult(speed).Add(p.arcPerp.Mult(speed * p.cfg.ArcAmplitude * wave))
	case MotionHoming:
		want := common.Direction(p.Center(), target, p.heading)
		p.heading = common.RotateToward(p.heading, want, p.TurnRate(target, reference)*dt)
		p.arcPerp = common.Perpendicular(p.heading)
		p.Velocity = p.heading.Mult(speed)
	default:
		p.Velocity = p.heading.Mult(speed)
	}

	p.Rect = p.Translate(p.Velocity.Mult(dt))
	p.bounce(arena)

	if p.cfg.MaxLifetime > 0 && p.Age > p.cfg.MaxLifetime {
		p.Active = false
	}
}

// TurnRate is the homing turn speed in radians per second. It ramps from
// HomingMinTurn up to HomingMaxTurn as reference closes in on target.
func (p *Projectile) TurnRate(target, reference cp.Vector) float64 {
	if p == nil {
		return 0
	}
	c := p.cfg
	if c.HomingRange <= 0 {
		return c.HomingMaxTurn
	}
	d := reference.Sub(target).Length()
	ease := math.Pow(1-common.Clamp(d/c.HomingRange, 0, 1), math.Max(c.HomingEasePower, 0))
	turn := c.HomingMinTurn + (c.HomingMaxTurn-c.HomingMinTurn)*ease
	return math.Min(turn, c.HomingMaxTurn)
}

// Deflect sends the projectile radially away from point at its current speed.
func (p *Projectile) Deflect(from cp.Vector) {
	if p == nil || !p.Active {
		return
	}
	p.setHeading(common.Direction(from, p.Center(), p.heading))
	p.Velocity = p.heading.Mult(p.Speed())
}

func (p *Projectile) Despawn() {
	if p == nil {
		return
	}
	p.Active = false
}

func (p *Projectile) decayBoost() {
	if p.boostSpent {
		p.Boost = 0
		return
	}
	p.Boost = p.boost0 * math.Exp(-p.cfg.BoostDecayRate*p.Age)
	if p.Boost < p.cfg.BoostThreshold {
		p.Boost = 0
		p.boostSpent = true
	}
}

func (p *Projectile) bounce(arena common.Arena) {
	n := arena.Bounce(&p.Rect, &p.Velocity)
	if n == 0 {
		return
	}
	p.BounceCount += n
	p.setHeading(common.Normalize(p.Velocity, p.heading))
	if p.BounceCount > p.MaxBounces {
		p.Active = false
	}
}

func (p *Projectile) setHeading(h cp.Vector) {
	p.heading = h
	p.arcPerp = common.Perpendicular(h)
	p.arcProgress = 0
}

func (p *Projectile) applyTint() {
	intensity := note.IntensityRatio(p.Intensity)
	hue := math.Mod(p.cfg.ColorScheme, 360)
	if hue < 0 {
		hue += 360
	}
	p.Hue = hue / 360
	p.Saturation = 0.4 + float64(p.Pitch)/128*0.6
	p.Value = 0.5 + intensity*0.5
	p.Alpha = 0.6 + intensity*0.4
}
