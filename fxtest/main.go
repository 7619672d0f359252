package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jessevdk/go-flags"
	"github.com/robmorgan/glow/effect"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
)

type options struct {
	Broker   string        `short:"b" long:"broker" description:"MQTT broker url" default:"tcp://localhost:1883"`
	Topic    string        `short:"t" long:"topic" description:"command topic" default:"glow/brightness/set"`
	Easing   string        `short:"e" long:"easing" description:"easing function" default:"in-out-quad"`
	Duration time.Duration `short:"d" long:"duration" description:"length of one sweep" default:"2s"`
	FPS      int           `long:"fps" description:"commands per second per channel" default:"20"`
	Loops    int           `short:"n" long:"loops" description:"up and down sweeps to run, 0 runs until interrupted" default:"1"`
}

// fxtest sweeps both channels up and down over MQTT, channel 1 mirrored
// against channel 0, to exercise a running controller.
func main() {
	opts := options{}
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := logger.GetProjectLogger()

	easingFunc, err := effect.ByName(opts.Easing)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	client := mqtt.NewClient(mqtt.NewClientOptions().AddBroker(opts.Broker).SetClientID("glow-fxtest"))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Fatalf("could not connect to %s: %v", opts.Broker, token.Error())
	}
	defer client.Disconnect(250)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	interval := effect.FPS(opts.FPS)
	up := effect.NewSweep(easingFunc, 0, 100, opts.Duration)
	frames := append(up.Frames(interval), up.Reverse().Frames(interval)...)

	t := time.NewTicker(interval)
	defer t.Stop()
	logger.Printf("sweeping %d frames per loop on %s", len(frames), opts.Topic)

	for loop := 0; opts.Loops == 0 || loop < opts.Loops; loop++ {
		for i, v := range frames {
			select {
			case <-ctx.Done():
				logger.Println("fxtest interrupted")
				return
			case <-t.C:
			}

			mirrored := frames[len(frames)-1-i]
			publish(client, opts.Topic, fixture.Command{Channel: fixture.Channel0, Brightness: v})
			publish(client, opts.Topic, fixture.Command{Channel: fixture.Channel1, Brightness: mirrored})
		}
	}
}

func publish(client mqtt.Client, topic string, cmd fixture.Command) {
	payload, _ := cmd.MarshalBinary()
	token := client.Publish(topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		logger := logger.GetProjectLogger()
		logger.Errorf("publish %s: %v", cmd, token.Error())
	}
}
