package types

import "time"

// Config represents a hwrename project file (config.json)
type Config struct {
	WorkingDirectory string     `json:"working_directory"`
	RenameFormat     string     `json:"rename_format"`
	Data             [][]string `json:"data"`
}

// Row is one entry to locate and rename. Args are consumed by the
// template positionally.
type Row struct {
	Target string
	Args   []string
}

// GlobalConfig represents the global configuration file (~/.config/hwrename/config.yml)
type GlobalConfig struct {
	RenameFormat string        `yaml:"rename_format"`
	Pacing       time.Duration `yaml:"pacing"`    // Upper bound of the random delay between renames
	LogLevel     string        `yaml:"log_level"` // debug, info, warn, error
	ConfigFile   string        `yaml:"config_file"`
	SheetFile    string        `yaml:"sheet_file"`
}

// Rows converts the raw data table into rows. The first cell of each
// line is the target, the rest are template arguments.
func (c *Config) Rows() []Row {
	rows := make([]Row, len(c.Data))
	for i, line := range c.Data {
		if len(line) == 0 {
			continue
		}
		rows[i].Target = line[0]
		rows[i].Args = append([]string(nil), line[1:]...)
	}
	return rows
}

// SetRows replaces the data table with the given rows
func (c *Config) SetRows(rows []Row) {
	c.Data = make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, 0, len(r.Args)+1)
		line = append(line, r.Target)
		line = append(line, r.Args...)
		c.Data[i] = line
	}
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	res := *c
	if len(c.Data) > 0 {
		res.Data = make([][]string, len(c.Data))
		for i, line := range c.Data {
			res.Data[i] = make([]string, len(line))
			copy(res.Data[i], line)
		}
	}
	return &res
}

// Clone returns a copy of the global configuration
func (g *GlobalConfig) Clone() GlobalConfig {
	return *g
}
