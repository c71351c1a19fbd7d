package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingMeanWarmup(t *testing.T) {
	m := NewRollingMean(3)

	m.Update(1)
	assert.False(t, m.Ready())
	assert.True(t, IsMissing(m.Value()))

	m.Update(2)
	assert.True(t, IsMissing(m.Value()))

	m.Update(3)
	assert.True(t, m.Ready())
	assert.InDelta(t, 2.0, m.Value(), 1e-9)
}

func TestRollingMeanSlides(t *testing.T) {
	m := NewRollingMean(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		m.Update(v)
	}
	// Window is 3,4,5.
	assert.InDelta(t, 4.0, m.Value(), 1e-9)
}

func TestRollingMeanNaNPoisonsWindow(t *testing.T) {
	m := NewRollingMean(3)
	m.Update(math.NaN())
	m.Update(2)
	m.Update(3)
	// Full window but contains a NaN sample.
	assert.True(t, IsMissing(m.Value()))

	// Once the NaN falls out the mean is defined again.
	m.Update(4)
	assert.InDelta(t, 3.0, m.Value(), 1e-9)
}

func TestRollingMeanReset(t *testing.T) {
	m := NewRollingMean(2)
	m.Update(10)
	m.Update(20)
	m.Reset()
	assert.False(t, m.Ready())
	m.Update(1)
	m.Update(3)
	assert.InDelta(t, 2.0, m.Value(), 1e-9)
}

func TestRollingMaxWarmupAndSlide(t *testing.T) {
	m := NewRollingMax(3)

	m.Update(5)
	m.Update(9)
	assert.False(t, m.Ready())
	assert.True(t, IsMissing(m.Value()))

	m.Update(4)
	assert.InDelta(t, 9.0, m.Value(), 1e-9) // 5,9,4

	m.Update(2)
	assert.InDelta(t, 9.0, m.Value(), 1e-9) // 9,4,2

	m.Update(3)
	assert.InDelta(t, 4.0, m.Value(), 1e-9) // 4,2,3

	m.Update(1)
	assert.InDelta(t, 3.0, m.Value(), 1e-9) // 2,3,1
}

func TestRollingMaxMonotoneInput(t *testing.T) {
	m := NewRollingMax(4)
	for v := 1.0; v <= 10; v++ {
		m.Update(v)
	}
	assert.InDelta(t, 10.0, m.Value(), 1e-9)

	d := NewRollingMax(4)
	for v := 10.0; v >= 1; v-- {
		d.Update(v)
	}
	assert.InDelta(t, 4.0, d.Value(), 1e-9)
}
