package config

// Overrides carries command-line values that take precedence over the file.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	LogLevel  string
	LogFile   string
	OutputDir string
	Compress  bool
	Width     int
	Height    int
}

// Apply applies flag overrides to the config.
func (c *Config) Apply(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
	if o.OutputDir != "" {
		c.Export.OutputDir = o.OutputDir
	}
	if o.Compress {
		c.Export.Compress = true
	}
	if o.Width > 0 {
		c.Render.Width = o.Width
	}
	if o.Height > 0 {
		c.Render.Height = o.Height
	}
}
