package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeRecipeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recipes.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadRecipeFile verifies a valid file registers its recipes
func TestLoadRecipeFile(t *testing.T) {
	path := writeRecipeFile(t, `
[[recipe]]
name = "fanfare"
player_pitch = [1.0, 1.12]

[[recipe.step]]
at_ms = 0
kind = "tone"
freq = 440.0
duration_ms = 200
wave = "square"
level = 0.8
envelope = { attack = 0.01, decay = 0.1, sustain = 0.7, release = 0.3 }

[[recipe.step]]
at_ms = 150
kind = "noise"
duration_ms = 300
filter = { kind = "bandpass", freq = 1200.0, q = 1.2 }

[[recipe.step]]
at_ms = 400
kind = "recipe"
ref = "bell"
`)

	reg := NewRegistry()
	if err := LoadRecipeFile(reg, path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec, ok := reg.Get("fanfare")
	if !ok {
		t.Fatal("Expected fanfare registered")
	}
	if len(rec.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(rec.Steps))
	}

	tone := rec.Steps[0]
	if tone.Kind != StepTone || tone.Freq != 440 || tone.Wave != WaveSquare {
		t.Errorf("Unexpected tone step %+v", tone)
	}
	if tone.Level != 0.8 {
		t.Errorf("Expected level 0.8, got %f", tone.Level)
	}
	if tone.Env == nil || tone.Env.Sustain != 0.7 {
		t.Error("Expected parsed envelope")
	}

	noise := rec.Steps[1]
	if noise.Kind != StepNoise || noise.At != 150*time.Millisecond {
		t.Errorf("Unexpected noise step %+v", noise)
	}
	if noise.Filter.Kind != FilterBandPass || noise.Filter.Q != 1.2 {
		t.Errorf("Unexpected noise filter %+v", noise.Filter)
	}

	ref := rec.Steps[2]
	if ref.Kind != StepRecipe || ref.Ref != "bell" {
		t.Errorf("Unexpected ref step %+v", ref)
	}

	if len(rec.PlayerPitch) != 2 || rec.PlayerPitch[1] != 1.12 {
		t.Errorf("Unexpected player pitch %v", rec.PlayerPitch)
	}
}

// TestLoadRecipeFileOverridesBuiltin verifies file entries replace
// same-named built-ins
func TestLoadRecipeFileOverridesBuiltin(t *testing.T) {
	path := writeRecipeFile(t, `
[[recipe]]
name = "collect"

[[recipe.step]]
kind = "tone"
freq = 220.0
duration_ms = 50
wave = "sine"
`)

	reg := NewRegistry()
	if err := LoadRecipeFile(reg, path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec, ok := reg.Get("collect")
	if !ok || len(rec.Steps) != 1 || rec.Steps[0].Freq != 220 {
		t.Error("Expected the file entry to override the built-in")
	}
}

// TestLoadRecipeFileAllOrNothing verifies one bad recipe rejects the
// whole file, leaving valid entries unregistered
func TestLoadRecipeFileAllOrNothing(t *testing.T) {
	path := writeRecipeFile(t, `
[[recipe]]
name = "good"

[[recipe.step]]
kind = "tone"
freq = 440.0
duration_ms = 100
wave = "sine"

[[recipe]]
name = "bad"

[[recipe.step]]
kind = "tone"
freq = 440.0
duration_ms = 100
wave = "sinus"
`)

	reg := NewRegistry()
	if err := LoadRecipeFile(reg, path); err == nil {
		t.Fatal("Expected load to fail on the bad wave")
	}
	if _, ok := reg.Get("good"); ok {
		t.Error("Expected no partial registration")
	}
}

// TestLoadRecipeFileValidation verifies per-step constraints
func TestLoadRecipeFileValidation(t *testing.T) {
	cases := map[string]string{
		"missing name": `
[[recipe]]
[[recipe.step]]
kind = "tone"
freq = 440.0
duration_ms = 100
wave = "sine"
`,
		"no steps": `
[[recipe]]
name = "empty"
`,
		"tone without freq": `
[[recipe]]
name = "x"
[[recipe.step]]
kind = "tone"
duration_ms = 100
wave = "sine"
`,
		"tone without duration": `
[[recipe]]
name = "x"
[[recipe.step]]
kind = "tone"
freq = 440.0
wave = "sine"
`,
		"unknown kind": `
[[recipe]]
name = "x"
[[recipe.step]]
kind = "chime"
`,
		"ref without target": `
[[recipe]]
name = "x"
[[recipe.step]]
kind = "recipe"
`,
		"unknown filter": `
[[recipe]]
name = "x"
[[recipe.step]]
kind = "noise"
duration_ms = 100
filter = { kind = "notch", freq = 500.0 }
`,
	}

	for name, content := range cases {
		reg := NewRegistry()
		if err := LoadRecipeFile(reg, writeRecipeFile(t, content)); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

// TestLoadRecipeFileMissing verifies an absent file errors cleanly
func TestLoadRecipeFileMissing(t *testing.T) {
	reg := NewRegistry()
	if err := LoadRecipeFile(reg, filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
