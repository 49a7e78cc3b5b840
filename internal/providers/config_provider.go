package providers

import (
	"fmt"
	"path/filepath"
	"stagehand/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "STAGEHAND_LOG_LEVEL")
	viper.BindEnv("webServer.port", "STAGEHAND_PORT")
	viper.BindEnv("persistence.filePath", "STAGEHAND_DB_FILE")
	viper.BindEnv("uploads.dir", "STAGEHAND_UPLOADS_DIR")
	viper.BindEnv("cache.enabled", "STAGEHAND_CACHE_ENABLED")
	viper.BindEnv("cache.size", "STAGEHAND_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Stagehand"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
