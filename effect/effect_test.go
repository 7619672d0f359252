package effect

import (
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepAt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		easingFunc ease.Function
		from       uint8
		to         uint8
		elapsed    time.Duration
		expected   uint8
	}{
		{ease.Linear, 0, 100, 0, 0},
		{ease.Linear, 0, 100, 500 * time.Millisecond, 50},
		{ease.Linear, 0, 100, time.Second, 100},
		{ease.Linear, 0, 100, 2 * time.Second, 100},
		{ease.Linear, 100, 0, 250 * time.Millisecond, 75},
		{ease.InQuart, 0, 100, 500 * time.Millisecond, 6},
		{ease.InOutQuart, 0, 100, 500 * time.Millisecond, 50},
	}

	for _, testCase := range testCases {
		sweep := NewSweep(testCase.easingFunc, testCase.from, testCase.to, time.Second)
		assert.Equal(t, testCase.expected, sweep.At(testCase.elapsed))
	}
}

func TestSweepClampsEndpoints(t *testing.T) {
	t.Parallel()

	sweep := NewSweep(ease.Linear, 0, 200, time.Second)
	assert.Equal(t, uint8(100), sweep.To)
	assert.Equal(t, uint8(100), sweep.At(time.Second))
}

func TestSweepFrames(t *testing.T) {
	t.Parallel()

	sweep := NewSweep(ease.Linear, 0, 100, time.Second)
	frames := sweep.Frames(FPS(4))
	assert.Equal(t, []uint8{0, 25, 50, 75, 100}, frames)

	reversed := sweep.Reverse().Frames(FPS(4))
	assert.Equal(t, []uint8{100, 75, 50, 25, 0}, reversed)

	assert.Equal(t, []uint8{100}, sweep.Frames(0))
}

func TestSweepIsMonotonic(t *testing.T) {
	t.Parallel()

	for _, name := range EasingNames() {
		f, err := ByName(name)
		require.NoError(t, err)

		frames := NewSweep(f, 0, 100, time.Second).Frames(FPS(40))
		for i := 1; i < len(frames); i++ {
			assert.GreaterOrEqual(t, frames[i], frames[i-1], "easing %s frame %d", name, i)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	t.Parallel()

	_, err := ByName("bounce")
	require.Error(t, err)
	assert.Equal(t, UnknownEasing{Name: "bounce"}, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "in-out-quad")
}
