package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"stagehand/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeSocket
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	socket zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", conf.Logger.Dir, err)
	}

	mode := os.FileMode(conf.Logger.Mode)
	p := &LogProvider{}

	open := func(name string) (zerolog.Logger, error) {
		f, err := os.OpenFile(filepath.Join(conf.Logger.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			return zerolog.Logger{}, err
		}
		p.files = append(p.files, f)
		return zerolog.New(f).Level(level).With().Timestamp().Logger(), nil
	}

	if p.app, err = open("app.log"); err != nil {
		p.Close()
		return nil, err
	}
	if p.access, err = open("access.log"); err != nil {
		p.Close()
		return nil, err
	}
	if p.socket, err = open("socket.log"); err != nil {
		p.Close()
		return nil, err
	}

	if conf.Debug {
		p.app = p.app.Output(zerolog.MultiLevelWriter(p.files[0], zerolog.ConsoleWriter{Out: os.Stderr}))
	}

	return p, nil
}

func (p *LogProvider) byType(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeGet, TypePost:
		return &p.access
	case TypeSocket:
		return &p.socket
	default:
		return &p.app
	}
}

func (p *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Error().Msgf(format, args...)
}

func (p *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Warn().Msgf(format, args...)
}

func (p *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Debug().Msgf(format, args...)
}

func (p *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Info().Msgf(format, args...)
}

func (p *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Fatal().Msgf(format, args...)
}

func (p *LogProvider) Close() {
	for _, f := range p.files {
		_ = f.Close()
	}
}
