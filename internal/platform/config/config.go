package config

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Web      WebConfig      `yaml:"web"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type ServerConfig struct {
	IP    string     `yaml:"ip"`
	Port  int        `yaml:"port"`
	Token string     `yaml:"token"`
	Auth  AuthConfig `yaml:"auth"`
}

// AuthConfig toggles bearer-token protection of the analysis endpoint.
type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	StaticDir string `yaml:"static_dir"`
}

// AnalysisConfig bounds what the image ingestion pipeline will accept.
// Limits exist to protect the server, not the analysis itself; the core
// pipeline handles any decodable image.
type AnalysisConfig struct {
	MaxFileSize    int64    `yaml:"max_file_size"`
	MaxPixels      int64    `yaml:"max_pixels"`
	MaxWidth       int      `yaml:"max_width"`
	MaxHeight      int      `yaml:"max_height"`
	AllowedFormats []string `yaml:"allowed_formats"`
}
