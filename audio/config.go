package audio

import (
	"os"
	"strconv"

	"github.com/arcadehq/chime/constants"
)

// Config holds engine settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	MusicVolume  float64
	SfxVolume    float64
	SampleRate   int

	// StartSuspended initializes the output in the suspended state;
	// platforms that gate playback behind a user gesture set this and
	// call Resume from the gesture handler
	StartSuspended bool

	// RecipeFile optionally points at a TOML recipe definition file
	// whose entries override the built-in library
	RecipeFile string
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.8,
		MusicVolume:  0.7,
		SfxVolume:    1.0,
		SampleRate:   constants.SampleRate,
	}
}

// LoadConfig reads configuration from environment variables, falling
// back to defaults for anything unset or unparsable
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("CHIME_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes arrive as 0-100 integers
	if v, ok := envPercent("CHIME_MASTER_VOLUME"); ok {
		cfg.MasterVolume = v
	}
	if v, ok := envPercent("CHIME_MUSIC_VOLUME"); ok {
		cfg.MusicVolume = v
	}
	if v, ok := envPercent("CHIME_SFX_VOLUME"); ok {
		cfg.SfxVolume = v
	}

	if sampleRate := os.Getenv("CHIME_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if path := os.Getenv("CHIME_RECIPE_FILE"); path != "" {
		cfg.RecipeFile = path
	}

	return cfg
}

func envPercent(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return clamp01(float64(val) / 100.0), true
}
