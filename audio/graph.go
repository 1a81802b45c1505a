package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Bus names the three mixing channels
type Bus int

const (
	BusMaster Bus = iota
	BusMusic
	BusSfx
)

// Graph owns the three-bus gain hierarchy:
//
//	output ← master ← { music, sfx }
//
// Effective volume of a child bus is master*bus, so muting master
// silences both children.
type Graph struct {
	out Output

	masterMixer *beep.Mixer
	musicMixer  *beep.Mixer
	sfxMixer    *beep.Mixer

	master *effects.Volume
	music  *effects.Volume
	sfx    *effects.Volume

	mu        sync.RWMutex
	masterVol float64
	musicVol  float64
	sfxVol    float64
}

func newGraph(out Output, masterVol, musicVol, sfxVol float64) *Graph {
	g := &Graph{
		out:         out,
		masterMixer: &beep.Mixer{},
		musicMixer:  &beep.Mixer{},
		sfxMixer:    &beep.Mixer{},
		masterVol:   clamp01(masterVol),
		musicVol:    clamp01(musicVol),
		sfxVol:      clamp01(sfxVol),
	}
	g.music = newVolume(g.musicMixer, g.musicVol)
	g.sfx = newVolume(g.sfxMixer, g.sfxVol)
	g.masterMixer.Add(g.music, g.sfx)
	g.master = newVolume(g.masterMixer, g.masterVol)
	return g
}

// attach hands the graph root to the output device. Called once after
// the device is initialized.
func (g *Graph) attach() {
	g.out.Play(g.master)
}

// SetMasterVolume clamps v to [0,1] and applies it immediately
func (g *Graph) SetMasterVolume(v float64) {
	g.setVolume(BusMaster, v)
}

// SetMusicVolume clamps v to [0,1] and applies it immediately
func (g *Graph) SetMusicVolume(v float64) {
	g.setVolume(BusMusic, v)
}

// SetSfxVolume clamps v to [0,1] and applies it immediately
func (g *Graph) SetSfxVolume(v float64) {
	g.setVolume(BusSfx, v)
}

func (g *Graph) setVolume(bus Bus, v float64) {
	v = clamp01(v)

	g.mu.Lock()
	switch bus {
	case BusMaster:
		g.masterVol = v
	case BusMusic:
		g.musicVol = v
	case BusSfx:
		g.sfxVol = v
	}
	g.mu.Unlock()

	// Mutating an effects.Volume races with the output's mix
	// goroutine unless the device is locked
	g.out.Lock()
	switch bus {
	case BusMaster:
		applyVolume(g.master, v)
	case BusMusic:
		applyVolume(g.music, v)
	case BusSfx:
		applyVolume(g.sfx, v)
	}
	g.out.Unlock()
}

// Volume returns the stored scalar for one bus
func (g *Graph) Volume(bus Bus) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch bus {
	case BusMusic:
		return g.musicVol
	case BusSfx:
		return g.sfxVol
	default:
		return g.masterVol
	}
}

// EffectiveVolume returns master*bus for a child bus, or the master
// scalar itself
func (g *Graph) EffectiveVolume(bus Bus) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch bus {
	case BusMusic:
		return g.masterVol * g.musicVol
	case BusSfx:
		return g.masterVol * g.sfxVol
	default:
		return g.masterVol
	}
}

// addSfx mixes a streamer into the sfx bus
func (g *Graph) addSfx(s beep.Streamer) {
	g.out.Lock()
	g.sfxMixer.Add(s)
	g.out.Unlock()
}

// addMusic mixes a streamer into the music bus
func (g *Graph) addMusic(s beep.Streamer) {
	g.out.Lock()
	g.musicMixer.Add(s)
	g.out.Unlock()
}

// clearMusic drops every streamer on the music bus
func (g *Graph) clearMusic() {
	g.out.Lock()
	g.musicMixer.Clear()
	g.out.Unlock()
}

// newVolume wraps a streamer in a log-scaled gain stage.
// math.Log2(0) is -Inf, so zero volume switches to Silent instead.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	applyVolume(v, vol)
	return v
}

func applyVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
