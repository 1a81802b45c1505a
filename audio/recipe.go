package audio

import (
	"sync"
	"time"
)

// StepKind tags the variant held by a Step
type StepKind int

const (
	StepTone StepKind = iota
	StepNoise
	StepRecipe
)

// Step is one timed action inside a recipe. At is the offset from the
// moment of invocation; steps are scheduled independently, so
// overlapping invocations layer rather than interrupt.
type Step struct {
	At   time.Duration
	Kind StepKind

	// Tone fields
	Freq     float64
	Duration time.Duration
	Wave     Waveform
	Env      *Envelope // nil means DefaultEnvelope
	Level    float64   // amplitude scale; 1.0 when zero

	// Noise fields (Duration and Level shared with tones)
	Filter FilterSpec

	// Recipe reference
	Ref string
}

// Recipe is a named, immutable, ordered list of timed steps
type Recipe struct {
	Name  string
	Steps []Step

	// PlayerPitch holds per-player frequency multipliers indexed by
	// PlayerID; out-of-range IDs fall back to 1.0
	PlayerPitch []float64
}

func (r *Recipe) playerPitch(id int) float64 {
	if id >= 0 && id < len(r.PlayerPitch) && r.PlayerPitch[id] > 0 {
		return r.PlayerPitch[id]
	}
	return 1.0
}

// Registry maps recipe names to descriptors. It is loaded once at
// startup and safe for concurrent reads.
type Registry struct {
	mu      sync.RWMutex
	recipes map[string]*Recipe
}

// NewRegistry returns a registry preloaded with the built-in library
func NewRegistry() *Registry {
	r := &Registry{recipes: make(map[string]*Recipe)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a recipe. File-loaded recipes override
// built-ins by registering under the same name.
func (r *Registry) Register(rec *Recipe) {
	if rec == nil || rec.Name == "" {
		return
	}
	r.mu.Lock()
	r.recipes[rec.Name] = rec
	r.mu.Unlock()
}

// Get retrieves a recipe by name
func (r *Registry) Get(name string) (*Recipe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recipes[name]
	return rec, ok
}

// Names returns every registered recipe name
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered recipes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}
