package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/jessevdk/go-flags"
	"github.com/robmorgan/glow/config"
	"github.com/robmorgan/glow/cuelist"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/robmorgan/glow/storage"
	"github.com/robmorgan/glow/transport"
	"github.com/robmorgan/glow/utils"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
	"periph.io/x/host/v3"
)

type options struct {
	Config   string `short:"c" long:"config" description:"path to a YAML config file" default:"glow.yml"`
	LogLevel string `short:"l" long:"log-level" description:"log level, overrides the config file"`
	Store    string `short:"s" long:"store" description:"path to a sqlite record store, overrides the config file"`
	Output   string `short:"o" long:"output" description:"sim or periph, overrides the config file"`
}

func main() {
	opts := options{}
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := Run(ctx, opts); err != nil {
		logger := logger.GetProjectLogger()
		logger.Fatalf("glow exited: %s", errors.PrintErrorWithStackTrace(err))
	}
}

// Run starts the controller and blocks until ctx is cancelled.
func Run(ctx context.Context, opts options) error {
	// initialize the global config
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"board": cfg.Board, "output": cfg.Output, "store": cfg.Store.Driver}).Info("Initialized config")

	logger.Infof("Opening %s record store...", cfg.Store.Driver)
	store, err := storage.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Infof("Initializing %s output...", cfg.Output)
	output, err := newOutput(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wg := sync.WaitGroup{}

	master, err := Start(ctx, &wg, clock.RealClock{}, cfg, output, store)
	if err != nil {
		cancel()
		wg.Wait()
		return err
	}

	// remote commands are only accepted once the restored state is queued
	if cfg.MQTT.Broker != "" {
		logger.Infof("Connecting to %s...", cfg.MQTT.Broker)
		listener := transport.NewListener(cfg.MQTT, master)
		if err := listener.Connect(); err != nil {
			logger.Errorf("could not connect to MQTT broker: %v", err)
		} else {
			defer listener.Close()
		}
	}

	<-ctx.Done()
	logger.Println("shutting down glow")
	cancel()
	wg.Wait()
	return nil
}

// Start brings up the controller core in order: configure outputs, restore the
// persisted brightness, then start the actuator and persistence workers. It
// returns the master so transports can push commands to it.
func Start(ctx context.Context, wg *sync.WaitGroup, clk clock.WithTicker, cfg config.GlowConfig, output fixture.Output, store storage.Store) (*cuelist.Master, error) {
	logger := logger.GetProjectLogger()

	p, err := cfg.GetProfile()
	if err != nil {
		return nil, err
	}
	converter := utils.DutyConverter{Resolution: p.Resolution, Inverted: p.Inverted}

	// init master
	logger.Info("Initializing master...")
	state := fixture.NewState()
	queue := cuelist.NewQueue(cfg.QueueCapacity)
	master := cuelist.InitializeMaster(output, state, queue, converter)

	if err := master.ConfigureOutputs(p.FrequencyHz); err != nil {
		return nil, err
	}

	if _, err := storage.Restore(store, master); err != nil {
		return nil, err
	}

	master.ProcessForever(ctx, wg)

	wg.Add(1)
	go storage.PersistWorker(ctx, clk, cfg.PersistInterval, state, store, master.Done(), wg)

	return master, nil
}

func loadConfig(opts options) (config.GlowConfig, error) {
	cfg, err := config.LoadConfig(opts.Config)
	if err != nil {
		return cfg, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Store != "" {
		cfg.Store = config.StoreConfig{Driver: storage.DriverSQLite, Path: opts.Store}
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	return cfg, cfg.Validate()
}

func newOutput(cfg config.GlowConfig) (fixture.Output, error) {
	if cfg.Output != config.OutputPeriph {
		return fixture.NewSimOutput(), nil
	}

	if _, err := host.Init(); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	p, err := cfg.GetProfile()
	if err != nil {
		return nil, err
	}
	patch, err := config.PatchChannels(p, cfg.Pins)
	if err != nil {
		return nil, err
	}
	return fixture.NewPeriphOutput(config.PinMap(patch)), nil
}
