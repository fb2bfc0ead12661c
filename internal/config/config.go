package config

import (
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       Env
	Server    ServerConfig
	Database  DatabaseConfig
	Media     MediaConfig
	Sweep     SweepConfig
	Transcode TranscodeConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"kaija.db"`
}

type MediaConfig struct {
	// Root is the media directory holding originals/, display/, thumbs/ and
	// video-renditions/ subdirectories
	Root string `envconfig:"MEDIA_PATH" required:"true"`
	// ChunkSessionsPath holds in-progress upload sessions. Defaults to a
	// chunk-sessions directory next to the media root.
	ChunkSessionsPath string `envconfig:"CHUNK_SESSIONS_PATH" default:""`
}

type SweepConfig struct {
	Interval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"6h"`
	Retention time.Duration `envconfig:"SWEEP_RETENTION" default:"24h"`
}

type TranscodeConfig struct {
	FFmpegPath string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	// PollInterval is the worker's backstop for draining work it was never
	// notified about, e.g. rows left pending across a restart
	PollInterval time.Duration `envconfig:"TRANSCODE_POLL_INTERVAL" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Media.ChunkSessionsPath == "" {
		cfg.Media.ChunkSessionsPath = filepath.Join(filepath.Dir(cfg.Media.Root), "chunk-sessions")
	}

	return &cfg, nil
}

// Subdirectories of the media root, one per rendition kind
func (m MediaConfig) OriginalsDir() string { return filepath.Join(m.Root, "originals") }
func (m MediaConfig) DisplayDir() string   { return filepath.Join(m.Root, "display") }
func (m MediaConfig) ThumbsDir() string    { return filepath.Join(m.Root, "thumbs") }
func (m MediaConfig) VideosDir() string    { return filepath.Join(m.Root, "video-renditions") }
