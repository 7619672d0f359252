package effect

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fogleman/ease"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/utils"
)

// FPS returns the frame interval for n frames per second.
func FPS(n int) time.Duration {
	if n <= 0 {
		n = 1
	}
	return time.Second / time.Duration(n)
}

var easings = map[string]ease.Function{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"in-quart":     ease.InQuart,
	"in-out-quart": ease.InOutQuart,
	"in-out-sine":  ease.InOutSine,
}

// EasingNames lists the easings ByName accepts.
func EasingNames() []string {
	out := make([]string, 0, len(easings))
	for name := range easings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName looks up an easing function.
func ByName(name string) (ease.Function, error) {
	f, ok := easings[name]
	if !ok {
		return nil, errors.WithStackTrace(UnknownEasing{Name: name})
	}
	return f, nil
}

// UnknownEasing is returned by ByName for a name it does not know.
type UnknownEasing struct {
	Name string
}

func (err UnknownEasing) Error() string {
	return fmt.Sprintf("unknown easing %q, expected one of %v", err.Name, EasingNames())
}

// Sweep fades a channel from one brightness to another over Duration.
type Sweep struct {
	// The easing function to use
	EasingFunc ease.Function

	From uint8
	To   uint8

	Duration time.Duration
}

func NewSweep(easingFunc ease.Function, from, to uint8, duration time.Duration) Sweep {
	return Sweep{
		EasingFunc: easingFunc,
		From:       utils.ClampBrightness(from),
		To:         utils.ClampBrightness(to),
		Duration:   duration,
	}
}

// At returns the brightness elapsed into the sweep.
func (s Sweep) At(elapsed time.Duration) uint8 {
	if s.Duration <= 0 || elapsed >= s.Duration {
		return s.To
	}
	if elapsed <= 0 {
		return s.From
	}

	t := s.EasingFunc(elapsed.Seconds() / s.Duration.Seconds())
	v := float64(s.From) + t*(float64(s.To)-float64(s.From))
	return uint8(utils.Clamp(math.Round(v), 0, utils.MaxBrightness))
}

// Frames samples the sweep at the given frame interval. The last frame is always To.
func (s Sweep) Frames(interval time.Duration) []uint8 {
	if interval <= 0 || s.Duration <= 0 {
		return []uint8{s.To}
	}

	out := make([]uint8, 0, int(s.Duration/interval)+1)
	for elapsed := time.Duration(0); elapsed < s.Duration; elapsed += interval {
		out = append(out, s.At(elapsed))
	}
	return append(out, s.To)
}

// Reverse returns the same sweep run backwards.
func (s Sweep) Reverse() Sweep {
	return Sweep{EasingFunc: s.EasingFunc, From: s.To, To: s.From, Duration: s.Duration}
}
