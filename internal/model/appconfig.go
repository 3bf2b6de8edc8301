package model

// maxRecentProjects bounds the RecentProjects list.
const maxRecentProjects = 10

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultCabinetID   string `json:"default_cabinet_id"`
	DefaultProjectName string `json:"default_project_name"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	LogLevel       string   `json:"log_level"`  // "debug", "info", "warn", "error"
	LogFormat      string   `json:"log_format"` // "text", "json"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultCabinetID:   "cab-1",
		DefaultProjectName: DefaultProjectName,
		RecentProjects:     []string{},
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// DefaultCabinet resolves DefaultCabinetID against the catalog, falling back
// to the first cabinet. It returns false when the catalog has no cabinets.
func (c AppConfig) DefaultCabinet(cat *Catalog) (Cabinet, bool) {
	if cab := cat.FindCabinet(c.DefaultCabinetID); cab != nil {
		return *cab, true
	}
	if len(cat.Cabinets) > 0 {
		return cat.Cabinets[0], true
	}
	return Cabinet{}, false
}

// AddRecent moves path to the front of RecentProjects, dropping duplicates
// and trimming the list to its maximum length.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
