package encounter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/common"
	"github.com/milk9111/purgatorium/obj"
	"github.com/milk9111/purgatorium/pattern"
	"github.com/milk9111/purgatorium/prefabs"
)

var ErrInvalidConfig = errors.New("encounter: invalid config")

// DefaultMaxDeltaTime caps a single tick so a stalled frame cannot tunnel
// entities through walls.
const DefaultMaxDeltaTime = 0.25

type Config struct {
	Name       string
	Arena      common.Arena
	Player     obj.PlayerConfig
	Adversary  obj.AdversaryConfig
	Barrier    obj.BarrierConfig
	Projectile obj.ProjectileConfig
	Aim        pattern.Config

	StartDelay   float64
	MaxDeltaTime float64
	// Track names the note data the host should load for this encounter.
	Track string
}

func DefaultConfig() Config {
	return Config{
		Name:         "default",
		Arena:        common.Arena{Width: 1280, Height: 720},
		Player:       obj.DefaultPlayerConfig(),
		Adversary:    obj.DefaultAdversaryConfig(),
		Barrier:      obj.DefaultBarrierConfig(),
		Projectile:   obj.DefaultProjectileConfig(),
		Aim:          pattern.DefaultConfig(),
		MaxDeltaTime: DefaultMaxDeltaTime,
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case !c.Arena.Valid():
		return fmt.Errorf("%w: arena %vx%v", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidConfig, c.Player.Width, c.Player.Height)
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player speed %v", ErrInvalidConfig, c.Player.Speed)
	case c.Adversary.Width <= 0 || c.Adversary.Height <= 0:
		return fmt.Errorf("%w: adversary size %vx%v", ErrInvalidConfig, c.Adversary.Width, c.Adversary.Height)
	case !c.Adversary.Stationary && c.Adversary.Speed <= 0:
		return fmt.Errorf("%w: adversary speed %v", ErrInvalidConfig, c.Adversary.Speed)
	case c.Projectile.BaseSize <= 0:
		return fmt.Errorf("%w: projectile base size %v", ErrInvalidConfig, c.Projectile.BaseSize)
	case c.Projectile.ReferenceSpeed <= 0:
		return fmt.Errorf("%w: projectile reference speed %v", ErrInvalidConfig, c.Projectile.ReferenceSpeed)
	case c.Projectile.MinScale <= 0 || c.Projectile.MaxScale < c.Projectile.MinScale:
		return fmt.Errorf("%w: projectile scale range [%v,%v]", ErrInvalidConfig, c.Projectile.MinScale, c.Projectile.MaxScale)
	case c.Projectile.BoostDecayRate < 0:
		return fmt.Errorf("%w: boost decay rate %v", ErrInvalidConfig, c.Projectile.BoostDecayRate)
	case c.Projectile.MaxBounces < 0:
		return fmt.Errorf("%w: max bounces %d", ErrInvalidConfig, c.Projectile.MaxBounces)
	case c.Barrier.RadiusMultiplier < 0:
		return fmt.Errorf("%w: barrier radius multiplier %v", ErrInvalidConfig, c.Barrier.RadiusMultiplier)
	case c.MaxDeltaTime <= 0 || !common.Finite(c.MaxDeltaTime):
		return fmt.Errorf("%w: max delta time %v", ErrInvalidConfig, c.MaxDeltaTime)
	case c.StartDelay < 0:
		return fmt.Errorf("%w: start delay %v", ErrInvalidConfig, c.StartDelay)
	}
	return nil
}

// ConfigFromSpec layers a YAML preset over DefaultConfig. Zero values in the
// spec keep the default. Scripted aim sources are loaded here so the
// simulation itself never touches the filesystem.
func ConfigFromSpec(spec *prefabs.EncounterSpec) (Config, error) {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg, nil
	}
	if spec.Name != "" {
		cfg.Name = spec.Name
	}

	setFloat(&cfg.Arena.Width, spec.Arena.Width)
	setFloat(&cfg.Arena.Height, spec.Arena.Height)

	p := spec.Player
	setFloat(&cfg.Player.Width, p.Width)
	setFloat(&cfg.Player.Height, p.Height)
	setFloat(&cfg.Player.Speed, p.Speed)
	setFloat(&cfg.Player.SlowFactor, p.SlowFactor)
	if p.SpawnX != 0 || p.SpawnY != 0 {
		cfg.Player.Spawn = cp.Vector{X: p.SpawnX, Y: p.SpawnY}
	}

	a := spec.Adversary
	setFloat(&cfg.Adversary.Width, a.Width)
	setFloat(&cfg.Adversary.Height, a.Height)
	setFloat(&cfg.Adversary.Speed, a.Speed)
	if a.DirectionX != 0 || a.DirectionY != 0 {
		cfg.Adversary.Direction = cp.Vector{X: a.DirectionX, Y: a.DirectionY}
	}
	if a.SpawnX != 0 || a.SpawnY != 0 {
		cfg.Adversary.Spawn = cp.Vector{X: a.SpawnX, Y: a.SpawnY}
	}
	cfg.Adversary.Stationary = a.Stationary

	b := spec.Barrier
	if b.MaxUses != nil {
		cfg.Barrier.MaxUses = *b.MaxUses
	}
	setFloat(&cfg.Barrier.DeployDuration, b.DeployDuration)
	setFloat(&cfg.Barrier.ExtendTime, b.ExtendTime)
	setFloat(&cfg.Barrier.RetractTime, b.RetractTime)
	setFloat(&cfg.Barrier.ArmThreshold, b.ArmThreshold)
	setFloat(&cfg.Barrier.RadiusMultiplier, b.RadiusMultiplier)

	if err := projectileFromSpec(&cfg.Projectile, spec.Projectile); err != nil {
		return cfg, fmt.Errorf("encounter: %s: %w", cfg.Name, err)
	}

	setFloat(&cfg.StartDelay, spec.Playback.StartDelay)
	setFloat(&cfg.MaxDeltaTime, spec.Playback.MaxDeltaTime)
	cfg.Track = spec.Playback.Track

	if err := aimFromSpec(&cfg.Aim, spec.Aim); err != nil {
		return cfg, fmt.Errorf("encounter: %s: %w", cfg.Name, err)
	}

	return cfg, nil
}

// LoadConfig reads a named preset and converts it.
func LoadConfig(name string) (Config, error) {
	spec, err := prefabs.LoadEncounterSpec(name)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromSpec(spec)
}

func projectileFromSpec(dst *obj.ProjectileConfig, s prefabs.ProjectileSpec) error {
	setFloat(&dst.BaseSize, s.BaseSize)
	setFloat(&dst.ReferenceSpeed, s.ReferenceSpeed)
	setFloat(&dst.MaxScale, s.MaxScale)
	setFloat(&dst.MinScale, s.MinScale)
	setFloat(&dst.BoostScale, s.BoostScale)
	setFloat(&dst.BoostDecayRate, s.BoostDecayRate)
	setFloat(&dst.BoostThreshold, s.BoostThreshold)
	setFloat(&dst.MaxLifetime, s.MaxLifetime)
	setFloat(&dst.ArcAmplitude, s.Arc.Amplitude)
	setFloat(&dst.ArcFrequency, s.Arc.Frequency)
	setFloat(&dst.HomingMinTurn, s.Homing.MinTurn)
	setFloat(&dst.HomingMaxTurn, s.Homing.MaxTurn)
	setFloat(&dst.HomingRange, s.Homing.Range)
	setFloat(&dst.HomingEasePower, s.Homing.EasePower)
	setFloat(&dst.ColorScheme, s.ColorScheme)
	if s.MaxBounces != nil {
		dst.MaxBounces = *s.MaxBounces
	}

	scaling, err := obj.ParseSpeedScaling(s.SpeedScaling)
	if err != nil {
		return err
	}
	dst.SpeedScaling = scaling

	motion, err := obj.ParseMotion(s.Motion)
	if err != nil {
		return err
	}
	dst.Motion = motion
	return nil
}

func aimFromSpec(dst *pattern.Config, s prefabs.AimSpec) error {
	if s.Strategy != "" {
		dst.Strategy = s.Strategy
	}
	setFloat(&dst.ClusterWindow, s.ClusterWindow)
	setFloat(&dst.SpreadStep, s.SpreadStep)
	setFloat(&dst.ArcStart, s.ArcStart)
	setFloat(&dst.ArcEnd, s.ArcEnd)
	dst.Params = s.Params

	if strings.ToLower(strings.TrimSpace(dst.Strategy)) != pattern.StrategyScript {
		return nil
	}
	if s.Script == "" {
		return fmt.Errorf("aim strategy %q needs a script", s.Strategy)
	}
	src, err := prefabs.LoadScript(s.Script)
	if err != nil {
		return fmt.Errorf("load aim script %s: %w", s.Script, err)
	}
	dst.ScriptName = s.Script
	dst.Source = src
	return nil
}

func setFloat(dst *float64, v float64) {
	if v != 0 && common.Finite(v) {
		*dst = v
	}
}
