package fixture

// Output is the PWM peripheral the dimmer drives.
type Output interface {
	// ConfigureChannel is called once per channel at startup.
	ConfigureChannel(ch Channel, resolution uint8, frequencyHz uint32) error

	// ApplyDuty sets the duty of a configured channel.
	ApplyDuty(ch Channel, duty uint32) error
}
