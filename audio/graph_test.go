package audio

import (
	"math"
	"testing"
)

// TestVolumeClamping verifies out-of-range volumes clamp to [0,1]
func TestVolumeClamping(t *testing.T) {
	g := newGraph(&fakeOutput{}, 0.8, 0.7, 1.0)

	g.SetMasterVolume(-1.0)
	if v := g.Volume(BusMaster); v != 0 {
		t.Errorf("Expected master clamped to 0, got %f", v)
	}

	g.SetMasterVolume(5.0)
	if v := g.Volume(BusMaster); v != 1 {
		t.Errorf("Expected master clamped to 1, got %f", v)
	}

	g.SetMusicVolume(1.5)
	if v := g.Volume(BusMusic); v != 1 {
		t.Errorf("Expected music clamped to 1, got %f", v)
	}

	g.SetSfxVolume(-0.1)
	if v := g.Volume(BusSfx); v != 0 {
		t.Errorf("Expected sfx clamped to 0, got %f", v)
	}
}

// TestEffectiveVolume verifies the child buses multiply through the
// master gain
func TestEffectiveVolume(t *testing.T) {
	g := newGraph(&fakeOutput{}, 1.0, 1.0, 1.0)

	g.SetMasterVolume(0.5)
	g.SetMusicVolume(0.6)
	g.SetSfxVolume(0.8)

	if v := g.EffectiveVolume(BusMusic); math.Abs(v-0.3) > 1e-9 {
		t.Errorf("Expected effective music volume 0.3, got %f", v)
	}
	if v := g.EffectiveVolume(BusSfx); math.Abs(v-0.4) > 1e-9 {
		t.Errorf("Expected effective sfx volume 0.4, got %f", v)
	}
	if v := g.EffectiveVolume(BusMaster); v != 0.5 {
		t.Errorf("Expected master volume 0.5, got %f", v)
	}
}

// TestMasterMutesChildren verifies zero master silences both child
// buses regardless of their own settings
func TestMasterMutesChildren(t *testing.T) {
	g := newGraph(&fakeOutput{}, 1.0, 1.0, 1.0)

	g.SetMasterVolume(0)

	if !g.master.Silent {
		t.Error("Expected master gain stage silent at zero volume")
	}
	if v := g.EffectiveVolume(BusMusic); v != 0 {
		t.Errorf("Expected effective music volume 0, got %f", v)
	}
	if v := g.EffectiveVolume(BusSfx); v != 0 {
		t.Errorf("Expected effective sfx volume 0, got %f", v)
	}

	// Children recover when master comes back
	g.SetMasterVolume(1.0)
	if g.master.Silent {
		t.Error("Expected master gain stage audible again")
	}
	if v := g.EffectiveVolume(BusSfx); v != 1.0 {
		t.Errorf("Expected effective sfx volume restored to 1, got %f", v)
	}
}

// TestGainStageScaling verifies the log2 mapping of the scalar volume
func TestGainStageScaling(t *testing.T) {
	g := newGraph(&fakeOutput{}, 1.0, 1.0, 1.0)

	g.SetSfxVolume(0.5)
	if g.sfx.Silent {
		t.Fatal("Expected sfx gain stage audible")
	}
	// Base 2 with Volume=-1 halves the amplitude
	if math.Abs(g.sfx.Volume-(-1.0)) > 1e-9 {
		t.Errorf("Expected gain exponent -1 for volume 0.5, got %f", g.sfx.Volume)
	}

	g.SetSfxVolume(1.0)
	if g.sfx.Volume != 0 {
		t.Errorf("Expected gain exponent 0 for volume 1, got %f", g.sfx.Volume)
	}
}

// TestGraphAttach verifies attach hands exactly the master root to
// the device
func TestGraphAttach(t *testing.T) {
	out := &fakeOutput{}
	g := newGraph(out, 1.0, 1.0, 1.0)

	g.attach()

	if len(out.played) != 1 {
		t.Fatalf("Expected one streamer handed to the device, got %d", len(out.played))
	}
	if out.played[0] != g.master {
		t.Error("Expected the master gain stage as the graph root")
	}
}
