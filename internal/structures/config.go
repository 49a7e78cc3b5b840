package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type SceneArchiveConfig struct {
	Dir           string        `yaml:"dir"`
	TTL           time.Duration `yaml:"ttl"`
	PruneInterval time.Duration `yaml:"pruneInterval"`
}

type UploadsConfig struct {
	Dir       string `yaml:"dir" validate:"required|unixPath"`
	MaxSizeMB int    `yaml:"maxSizeMB"`
}

type SocketConfig struct {
	ReadBufferSize  int `yaml:"readBufferSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
	SendQueueSize   int `yaml:"sendQueueSize"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName      string
	Debug        bool
	Path         string
	WebServer    Server             `yaml:"webServer"`
	Persistence  Persistence        `yaml:"persistence"`
	SceneArchive SceneArchiveConfig `yaml:"sceneArchive"`
	Uploads      UploadsConfig      `yaml:"uploads"`
	Socket       SocketConfig       `yaml:"socket"`
	Logger       LoggerConfig       `yaml:"logger"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}
