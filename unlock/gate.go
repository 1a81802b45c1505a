// Package unlock implements the first-gesture audio consent flow
// required by autoplay policies: a two-state gate that stays LOCKED
// until the user interacts, then resumes the output device and
// persists the consent so later sessions skip the ritual.
package unlock

import (
	"sync"

	"github.com/rs/zerolog"
)

// State of the gate
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// NarrowViewportWidth is the widest viewport still treated as a
// constrained device for prompt purposes
const NarrowViewportWidth = 768

// DeviceProfile describes the host environment the gate decides for
type DeviceProfile struct {
	TouchCapable  bool
	ViewportWidth int
}

// constrained reports whether the device class requires an explicit
// consent prompt rather than silently waiting for a gesture
func (p DeviceProfile) constrained() bool {
	return p.TouchCapable || (p.ViewportWidth > 0 && p.ViewportWidth <= NarrowViewportWidth)
}

// Config wires the gate's collaborators
type Config struct {
	Store   Store
	Profile DeviceProfile

	// Resume unsuspends the audio output; called exactly once per
	// session, on the Locked→Unlocked transition (or at construction
	// when consent was already persisted)
	Resume func()

	// OnUnlock fires after the transition so the host can remove its
	// prompt overlay
	OnUnlock func()

	Logger zerolog.Logger
}

// Gate is the two-state unlock machine. Unlocked is terminal and
// sticky: within the session through the state field, across sessions
// through the persisted flag.
type Gate struct {
	mu       sync.Mutex
	state    State
	store    Store
	profile  DeviceProfile
	resume   func()
	onUnlock func()
	log      zerolog.Logger
}

// New builds the gate. When the store already holds consent the gate
// starts Unlocked and resumes immediately.
func New(cfg Config) *Gate {
	g := &Gate{
		state:    Locked,
		store:    cfg.Store,
		profile:  cfg.Profile,
		resume:   cfg.Resume,
		onUnlock: cfg.OnUnlock,
		log:      cfg.Logger,
	}
	if g.store == nil {
		g.store = NewMemoryStore()
	}

	granted, err := g.store.Load()
	if err != nil {
		g.log.Warn().Err(err).Msg("unlock flag unreadable, treating as locked")
	}
	if granted {
		g.state = Unlocked
		if g.resume != nil {
			g.resume()
		}
	}
	return g
}

// State returns the current gate state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// NeedsPrompt reports whether the host should show the consent
// overlay: only while locked, and only on touch-capable or
// narrow-viewport devices. Everyone else unlocks on the first
// ordinary gesture without ever seeing a prompt.
func (g *Gate) NeedsPrompt() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Locked && g.profile.constrained()
}

// NotifyGesture records a first tap/click/keypress anywhere in the
// host surface. Redundant calls are no-ops.
func (g *Gate) NotifyGesture() {
	g.unlock()
}

// Confirm records explicit consent from the prompt overlay
func (g *Gate) Confirm() {
	g.unlock()
}

func (g *Gate) unlock() {
	g.mu.Lock()
	if g.state == Unlocked {
		g.mu.Unlock()
		return
	}
	g.state = Unlocked
	g.mu.Unlock()

	if g.resume != nil {
		g.resume()
	}
	if err := g.store.Save(true); err != nil {
		g.log.Warn().Err(err).Msg("unlock flag not persisted")
	}
	if g.onUnlock != nil {
		g.onUnlock()
	}
}
