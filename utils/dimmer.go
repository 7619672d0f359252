package utils

// MaxBrightness is the logical full-on brightness.
const MaxBrightness = 100

// ClampBrightness treats anything above MaxBrightness as MaxBrightness.
func ClampBrightness(brightness uint8) uint8 {
	return Clamp(brightness, 0, MaxBrightness)
}

// DutyConverter turns a logical brightness into a hardware duty value for a PWM
// channel with the given resolution in bits.
//
// LED drivers wired active-low need Inverted set: full brightness then maps to
// the minimum duty and off maps to MaxDuty.
type DutyConverter struct {
	Resolution uint8
	Inverted   bool
}

// MaxDuty is the largest duty value the channel accepts, 2^Resolution - 1.
func (c DutyConverter) MaxDuty() uint32 {
	return 1<<c.Resolution - 1
}

// Convert maps brightness 0..100 to a duty in 0..MaxDuty.
func (c DutyConverter) Convert(brightness uint8) uint32 {
	level := uint32(ClampBrightness(brightness))
	if c.Inverted {
		level = MaxBrightness - level
	}
	return RoundDiv(level*c.MaxDuty(), MaxBrightness)
}
