package profile

const (
	BoardESP32DevKit = "esp32-devkit"
	BoardRaspberryPi = "raspberry-pi"
)

// Profile describes a board: which pin drives each dimmer channel and how its
// PWM peripheral is set up.
type Profile struct {
	Name string

	// Pins lists the pin name for each channel, in channel order.
	Pins []string

	// PWM resolution in bits, the duty range is 0..2^Resolution-1
	Resolution uint8

	FrequencyHz uint32

	// Inverted is set when the LED driver is active low, so full duty means off.
	Inverted bool
}

// Boards returns the built-in board profiles, keyed by name.
func Boards() map[string]Profile {
	return map[string]Profile{
		BoardESP32DevKit: {
			Name:        "ESP32 DevKit, LEDC",
			Pins:        []string{"GPIO2", "GPIO15"},
			Resolution:  11,
			FrequencyHz: 20000,
			Inverted:    true,
		},
		// hardware PWM0/PWM1
		BoardRaspberryPi: {
			Name:        "Raspberry Pi, PWM0/PWM1",
			Pins:        []string{"GPIO12", "GPIO13"},
			Resolution:  11,
			FrequencyHz: 20000,
			Inverted:    true,
		},
	}
}
