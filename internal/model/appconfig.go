package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default layout settings applied to every run
	DefaultTolerance   float64 `json:"default_tolerance"`
	DefaultSillStep    float64 `json:"default_sill_step"`
	DefaultMaxOpenings int     `json:"default_max_openings"`
	DefaultMaxBackoff  int     `json:"default_max_backoff"`
	DefaultWorkers     int     `json:"default_workers"`

	// Application preferences
	StylePath      string   `json:"style_path"` // empty = built-in style
	LogLevel       string   `json:"log_level"`  // "debug", "info", "warn", "error"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTolerance:   defaults.Tolerance,
		DefaultSillStep:    defaults.SillStep,
		DefaultMaxOpenings: defaults.MaxOpenings,
		DefaultMaxBackoff:  defaults.MaxBackoff,
		DefaultWorkers:     defaults.Workers,
		StylePath:          "",
		LogLevel:           "info",
		RecentProjects:     []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a LayoutSettings struct.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if c.DefaultTolerance > 0 {
		s.Tolerance = c.DefaultTolerance
	}
	if c.DefaultSillStep > 0 {
		s.SillStep = c.DefaultSillStep
	}
	if c.DefaultMaxOpenings > 0 {
		s.MaxOpenings = c.DefaultMaxOpenings
	}
	if c.DefaultMaxBackoff > 0 {
		s.MaxBackoff = c.DefaultMaxBackoff
	}
	if c.DefaultWorkers > 0 {
		s.Workers = c.DefaultWorkers
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
