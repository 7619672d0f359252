package config

import (
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/gruntwork-io/go-commons/files"
	"github.com/robmorgan/glow/cuelist"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/robmorgan/glow/profile"
	"github.com/robmorgan/glow/storage"
	"github.com/robmorgan/glow/transport"
	"gopkg.in/yaml.v3"
)

const (
	OutputSim    = "sim"
	OutputPeriph = "periph"

	maxResolution = 20
)

// StoreConfig selects where the applied brightness is persisted.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// GlowConfig represents options that configure the global behavior of the program
type GlowConfig struct {
	// Board selects a profile from BoardProfiles
	Board string `yaml:"board"`

	// The board profiles
	BoardProfiles map[string]profile.Profile `yaml:"-"`

	// Pins overrides the board's pin for a channel, keyed by channel name
	Pins map[string]string `yaml:"pins"`

	// Output is either sim or periph
	Output string `yaml:"output"`

	Store StoreConfig `yaml:"store"`

	PersistInterval time.Duration `yaml:"persist_interval"`

	QueueCapacity int `yaml:"queue_capacity"`

	LogLevel string `yaml:"log_level"`

	MQTT transport.Config `yaml:"mqtt"`
}

// NewGlowConfig creates a GlowConfig with reasonable defaults for running on a workstation.
func NewGlowConfig() GlowConfig {
	return GlowConfig{
		Board:           profile.BoardESP32DevKit,
		BoardProfiles:   initializeBoardProfiles(),
		Pins:            map[string]string{},
		Output:          OutputSim,
		Store:           StoreConfig{Driver: storage.DriverMemory},
		PersistInterval: storage.DefaultPersistInterval,
		QueueCapacity:   cuelist.DefaultQueueCapacity,
		LogLevel:        "info",
		MQTT:            transport.NewConfig(),
	}
}

// LoadConfig overlays the YAML file at path, if there is one, on the defaults and validates the result.
func LoadConfig(path string) (GlowConfig, error) {
	logger := logger.GetProjectLogger()
	config := NewGlowConfig()

	if path != "" && files.FileExists(path) {
		contents, err := files.ReadFileAsString(path)
		if err != nil {
			return config, errors.WithStackTrace(err)
		}
		if err := yaml.Unmarshal([]byte(contents), &config); err != nil {
			return config, errors.WithStackTrace(err)
		}
		logger.Infof("Loaded config from %s", path)
	} else if path != "" {
		logger.Warnf("Config file %s not found, using defaults", path)
	}

	return config, config.Validate()
}

// Validate checks the config is usable before anything is started.
func (c GlowConfig) Validate() error {
	p, err := c.GetProfile()
	if err != nil {
		return err
	}
	if p.Resolution == 0 || p.Resolution > maxResolution {
		return errors.WithStackTrace(InvalidConfig{Field: "resolution", Reason: "must be between 1 and 20 bits"})
	}
	if p.FrequencyHz == 0 {
		return errors.WithStackTrace(InvalidConfig{Field: "frequency", Reason: "must be positive"})
	}
	if _, err := PatchChannels(p, c.Pins); err != nil {
		return err
	}

	switch c.Output {
	case OutputSim, OutputPeriph:
	default:
		return errors.WithStackTrace(InvalidConfig{Field: "output", Reason: "must be sim or periph"})
	}

	switch c.Store.Driver {
	case storage.DriverMemory:
	case storage.DriverSQLite:
		if c.Store.Path == "" {
			return errors.WithStackTrace(InvalidConfig{Field: "store.path", Reason: "required for the sqlite driver"})
		}
	default:
		return errors.WithStackTrace(storage.UnknownDriver{Driver: c.Store.Driver})
	}

	if c.PersistInterval <= 0 {
		return errors.WithStackTrace(InvalidConfig{Field: "persist_interval", Reason: "must be positive"})
	}
	// restore enqueues one command per channel before the actuator runs
	if c.QueueCapacity < fixture.NumChannels {
		return errors.WithStackTrace(InvalidConfig{Field: "queue_capacity", Reason: "must hold at least one command per channel"})
	}

	return nil
}
