package prefabs

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEncounter is the preset used when none is named.
const DefaultEncounter = "encounter.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EncounterSpec is the YAML form of an encounter configuration. Zero values
// mean "use the default" unless noted on the field.
type EncounterSpec struct {
	Name       string         `yaml:"name"`
	Arena      ArenaSpec      `yaml:"arena"`
	Player     PlayerSpec     `yaml:"player"`
	Adversary  AdversarySpec  `yaml:"adversary"`
	Barrier    BarrierSpec    `yaml:"barrier"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Playback   PlaybackSpec   `yaml:"playback"`
	Aim        AimSpec        `yaml:"aim"`
	Palette    PaletteSpec    `yaml:"palette"`
}

func LoadEncounterSpec(name string) (*EncounterSpec, error) {
	if name == "" {
		name = DefaultEncounter
	}
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	spec, err := LoadSpec[EncounterSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(name), ".yaml")
	}
	return &spec, nil
}

type ArenaSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	SlowFactor float64 `yaml:"slow_factor"`
	SpawnX     float64 `yaml:"spawn_x"`
	SpawnY     float64 `yaml:"spawn_y"`
}

type AdversarySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	DirectionX float64 `yaml:"direction_x"`
	DirectionY float64 `yaml:"direction_y"`
	SpawnX     float64 `yaml:"spawn_x"`
	SpawnY     float64 `yaml:"spawn_y"`
	Stationary bool    `yaml:"stationary"`
}

type BarrierSpec struct {
	// MaxUses of zero disables the barrier; omit the key for the default.
	MaxUses          *int    `yaml:"max_uses"`
	DeployDuration   float64 `yaml:"deploy_duration"`
	ExtendTime       float64 `yaml:"extend_time"`
	RetractTime      float64 `yaml:"retract_time"`
	ArmThreshold     float64 `yaml:"arm_threshold"`
	RadiusMultiplier float64 `yaml:"radius_multiplier"`
}

type ProjectileSpec struct {
	BaseSize       float64    `yaml:"base_size"`
	ReferenceSpeed float64    `yaml:"reference_speed"`
	MaxScale       float64    `yaml:"max_scale"`
	MinScale       float64    `yaml:"min_scale"`
	SpeedScaling   string     `yaml:"speed_scaling"`
	BoostScale     float64    `yaml:"boost_scale"`
	BoostDecayRate float64    `yaml:"boost_decay_rate"`
	BoostThreshold float64    `yaml:"boost_threshold"`
	// MaxBounces of zero removes a projectile on its first bounce.
	MaxBounces     *int       `yaml:"max_bounces"`
	MaxLifetime    float64    `yaml:"max_lifetime"`
	Motion         string     `yaml:"motion"`
	Arc            ArcSpec    `yaml:"arc"`
	Homing         HomingSpec `yaml:"homing"`
	ColorScheme    float64    `yaml:"color_scheme"`
}

type ArcSpec struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

type HomingSpec struct {
	MinTurn   float64 `yaml:"min_turn"`
	MaxTurn   float64 `yaml:"max_turn"`
	Range     float64 `yaml:"range"`
	EasePower float64 `yaml:"ease_power"`
}

type PlaybackSpec struct {
	StartDelay   float64 `yaml:"start_delay"`
	MaxDeltaTime float64 `yaml:"max_delta_time"`
	Track        string  `yaml:"track"`
}

type AimSpec struct {
	Strategy      string         `yaml:"strategy"`
	ClusterWindow float64        `yaml:"cluster_window"`
	SpreadStep    float64        `yaml:"spread_step"`
	ArcStart      float64        `yaml:"arc_start"`
	ArcEnd        float64        `yaml:"arc_end"`
	Script        string         `yaml:"script"`
	Params        map[string]any `yaml:"params"`
}

type PaletteSpec struct {
	Background *YAMLColor `yaml:"background"`
	Player     *YAMLColor `yaml:"player"`
	Adversary  *YAMLColor `yaml:"adversary"`
	Barrier    *YAMLColor `yaml:"barrier"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
