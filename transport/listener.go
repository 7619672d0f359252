package transport

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/sirupsen/logrus"
)

// Config holds the broker connection settings for the command listener.
type Config struct {
	Broker   string        `yaml:"broker"`
	ClientID string        `yaml:"client_id"`
	Topic    string        `yaml:"topic"`
	QoS      byte          `yaml:"qos"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// NewConfig returns the listener defaults. An empty Broker disables the listener.
func NewConfig() Config {
	return Config{
		ClientID: "glow",
		Topic:    "glow/brightness/set",
		QoS:      1,
		Timeout:  10 * time.Second,
	}
}

// CommandPusher accepts decoded brightness commands without blocking.
type CommandPusher interface {
	PushCommand(ch fixture.Channel, brightness uint8)
}

// Listener subscribes to the command topic and pushes every well formed
// message to the actuator. Each message carries one 2-byte command.
type Listener struct {
	config Config
	pusher CommandPusher
	client mqtt.Client
}

func NewListener(config Config, pusher CommandPusher) *Listener {
	l := &Listener{config: config, pusher: pusher}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetAutoReconnect(true)
	// resubscribe on every (re)connect
	opts.SetOnConnectHandler(l.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger := logger.GetProjectLogger()
		logger.Warnf("Lost connection to %s: %v", config.Broker, err)
	})

	l.client = mqtt.NewClient(opts)
	return l
}

// Connect dials the broker. Subscription happens once the connection is up.
func (l *Listener) Connect() error {
	token := l.client.Connect()
	if !token.WaitTimeout(l.config.Timeout) {
		return errors.WithStackTrace(ConnectTimeout{Broker: l.config.Broker, Timeout: l.config.Timeout})
	}
	if err := token.Error(); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

func (l *Listener) onConnect(c mqtt.Client) {
	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"broker": l.config.Broker, "topic": l.config.Topic}).Info("Connected, subscribing to commands")

	token := c.Subscribe(l.config.Topic, l.config.QoS, l.HandleMessage)
	if !token.WaitTimeout(l.config.Timeout) {
		logger.Errorf("Timed out after %s subscribing to %s", l.config.Timeout, l.config.Topic)
		return
	}
	if err := token.Error(); err != nil {
		logger.Errorf("Failed to subscribe to %s: %v", l.config.Topic, err)
	}
}

// HandleMessage decodes one command and hands it to the pusher. Malformed
// payloads are logged and dropped.
func (l *Listener) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	logger := logger.GetProjectLogger()

	cmd, err := fixture.DecodeCommand(msg.Payload())
	if err != nil {
		logger.WithFields(logrus.Fields{"topic": msg.Topic(), "payload": msg.Payload()}).Warnf("Dropping command: %v", err)
		return
	}

	logger.WithFields(logrus.Fields{"topic": msg.Topic()}).Debugf("Received %s", cmd)
	l.pusher.PushCommand(cmd.Channel, cmd.Brightness)
}

// Close disconnects from the broker, giving in-flight work 250ms to finish.
func (l *Listener) Close() {
	if l.client.IsConnected() {
		l.client.Disconnect(250)
	}
}
