package course

import "sort"

// Validated ranges for course configuration.
const (
	MinPlaybackSpeed = 0.5
	MaxPlaybackSpeed = 3.0
	MinMultiplier    = 0.0
	MaxMultiplier    = 10.0
)

// Config holds the per-course pacing settings.
type Config struct {
	// PlaybackSpeed divides raw duration: 2.0 halves the effective time.
	PlaybackSpeed float64 `json:"playbackSpeed"`

	// DefaultPracticeMultiplier adds effectiveDuration × multiplier of
	// practice time after each video.
	DefaultPracticeMultiplier float64 `json:"defaultPracticeMultiplier"`

	// SectionMultipliers overrides the default multiplier per section label.
	SectionMultipliers map[string]float64 `json:"folderMultipliers"`
}

// DefaultConfig returns the settings a freshly scanned course starts with.
func DefaultConfig() Config {
	return Config{
		PlaybackSpeed:             1.0,
		DefaultPracticeMultiplier: 1.0,
		SectionMultipliers:        map[string]float64{},
	}
}

// DefaultGlobalConfig returns the settings used when no global config has
// been saved yet.
func DefaultGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.PlaybackSpeed = 1.5
	return cfg
}

// Multiplier returns the practice multiplier that applies to a section.
func (c Config) Multiplier(section string) float64 {
	if section != "" {
		if m, ok := c.SectionMultipliers[section]; ok {
			return m
		}
	}
	return c.DefaultPracticeMultiplier
}

// AverageMultiplier is the mean of all section overrides, or the default
// multiplier when there are none.
func (c Config) AverageMultiplier() float64 {
	if len(c.SectionMultipliers) == 0 {
		return c.DefaultPracticeMultiplier
	}
	// Sum in key order so the result is reproducible bit for bit.
	keys := make([]string, 0, len(c.SectionMultipliers))
	for k := range c.SectionMultipliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sum float64
	for _, k := range keys {
		sum += c.SectionMultipliers[k]
	}
	return sum / float64(len(keys))
}

// Validate rejects out-of-range values. It is applied to user input before a
// config change is accepted.
func (c Config) Validate() error {
	if err := ValidateSpeed(c.PlaybackSpeed); err != nil {
		return err
	}
	if err := ValidateMultiplier("default practice multiplier", c.DefaultPracticeMultiplier); err != nil {
		return err
	}
	for section, m := range c.SectionMultipliers {
		if err := ValidateMultiplier("multiplier for "+section, m); err != nil {
			return err
		}
	}
	return nil
}

// Normalize clamps every value into its valid range. It is applied to
// configs reconstructed from storage.
func (c Config) Normalize() Config {
	out := Config{
		PlaybackSpeed:             clamp(c.PlaybackSpeed, MinPlaybackSpeed, MaxPlaybackSpeed),
		DefaultPracticeMultiplier: clamp(c.DefaultPracticeMultiplier, MinMultiplier, MaxMultiplier),
		SectionMultipliers:        make(map[string]float64, len(c.SectionMultipliers)),
	}
	if c.PlaybackSpeed == 0 {
		out.PlaybackSpeed = DefaultConfig().PlaybackSpeed
	}
	for k, v := range c.SectionMultipliers {
		out.SectionMultipliers[k] = clamp(v, MinMultiplier, MaxMultiplier)
	}
	return out
}

// ValidateSpeed checks a playback speed against its range.
func ValidateSpeed(speed float64) error {
	if !inRange(speed, MinPlaybackSpeed, MaxPlaybackSpeed) {
		return &ErrConfiguration{
			Field:  "playback speed",
			Value:  speed,
			Reason: "must be between 0.5 and 3.0",
		}
	}
	return nil
}

// ValidateMultiplier checks a practice multiplier against its range.
func ValidateMultiplier(field string, m float64) error {
	if !inRange(m, MinMultiplier, MaxMultiplier) {
		return &ErrConfiguration{
			Field:  field,
			Value:  m,
			Reason: "must be between 0.0 and 10.0",
		}
	}
	return nil
}

// ConfigUpdate is a partial config change. Nil fields are left unchanged.
type ConfigUpdate struct {
	PlaybackSpeed             *float64
	DefaultPracticeMultiplier *float64
	SectionMultipliers        map[string]float64
	ClearSectionMultipliers   bool
}

// Apply returns cfg with the update merged in, validated.
func (u ConfigUpdate) Apply(cfg Config) (Config, error) {
	out := Config{
		PlaybackSpeed:             cfg.PlaybackSpeed,
		DefaultPracticeMultiplier: cfg.DefaultPracticeMultiplier,
		SectionMultipliers:        make(map[string]float64, len(cfg.SectionMultipliers)),
	}
	if !u.ClearSectionMultipliers {
		for k, v := range cfg.SectionMultipliers {
			out.SectionMultipliers[k] = v
		}
	}
	if u.PlaybackSpeed != nil {
		out.PlaybackSpeed = *u.PlaybackSpeed
	}
	if u.DefaultPracticeMultiplier != nil {
		out.DefaultPracticeMultiplier = *u.DefaultPracticeMultiplier
	}
	for k, v := range u.SectionMultipliers {
		out.SectionMultipliers[k] = v
	}
	if err := out.Validate(); err != nil {
		return cfg, err
	}
	return out, nil
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
