package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEncounterSpecPresets(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEncounterSpec(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if spec.Name == "" {
				t.Fatalf("preset %s has no name", name)
			}
			if spec.Arena.Width <= 0 || spec.Arena.Height <= 0 {
				t.Fatalf("preset %s arena = %+v", name, spec.Arena)
			}
		})
	}
}

func TestLoadDefaultEncounter(t *testing.T) {
	spec, err := LoadEncounterSpec("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if spec.Barrier.MaxUses == nil || *spec.Barrier.MaxUses != 3 {
		t.Fatalf("max_uses = %v, want 3", spec.Barrier.MaxUses)
	}
	if spec.Projectile.BoostDecayRate != 4 {
		t.Fatalf("boost_decay_rate = %v, want 4", spec.Projectile.BoostDecayRate)
	}
	if spec.Palette.Background == nil {
		t.Fatalf("expected background color")
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadSpec[EncounterSpec]("does_not_exist.yaml"); err == nil {
		t.Fatalf("expected error for missing preset")
	}
}

func TestLoadScript(t *testing.T) {
	tests := []string{"spiral", "spiral.tengo", "scripts/spiral.tengo", "prefabs/scripts/spiral.tengo"}
	for _, name := range tests {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q) returned empty script", name)
		}
	}
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A *YAMLColor `yaml:"a"`
		B *YAMLColor `yaml:"b"`
	}
	if err := yaml.Unmarshal([]byte("a: \"#ff8000\"\nb: \"00000080\"\n"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := out.A.Color; got != (color.NRGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Fatalf("a = %v", got)
	}
	if got := out.B.Color; got != (color.NRGBA{A: 128}) {
		t.Fatalf("b = %v", got)
	}

	var bad struct {
		C *YAMLColor `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("c: \"#123\"\n"), &bad); err == nil {
		t.Fatalf("expected error for short color")
	}

	var unset *YAMLColor
	if got := unset.Or(color.White); got != color.White {
		t.Fatalf("Or fallback = %v", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{path: "prefabs/encounter.yaml", kind: ChangePreset, ok: true},
		{path: "prefabs/x.YML", kind: ChangePreset, ok: true},
		{path: "prefabs/scripts/spiral.tengo", kind: ChangeScript, ok: true},
		{path: "tracks/song.json", kind: ChangeTrack, ok: true},
		{path: "README.md", ok: false},
	}
	for _, tc := range tests {
		kind, ok := Classify(tc.path)
		if ok != tc.ok || (ok && kind != tc.kind) {
			t.Fatalf("Classify(%q) = %v,%v want %v,%v", tc.path, kind, ok, tc.kind, tc.ok)
		}
	}
}
