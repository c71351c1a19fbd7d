// Package indicators provides the windowed statistics the breakout scanner
// consumes: fixed-size rolling means and maxima, true range and ATR.
//
// All rolling computations follow a strict full-window policy: a value is
// undefined (NaN) until the window holds `period` samples, and a NaN sample
// keeps the window undefined until it falls out. Derived series are
// parallel to their input series; callers check IsMissing before use.
package indicators

import "math"

// IsMissing reports whether a derived value is undefined (NaN).
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// RollingMean is a streaming fixed-window arithmetic mean with O(1)
// updates. The window is a ring buffer; the running sum is kept net of
// NaN samples, which are tracked separately so any NaN inside the window
// makes the mean undefined.
type RollingMean struct {
	period int
	buf    []float64
	head   int
	count  int
	sum    float64
	nans   int
}

// NewRollingMean creates a rolling mean over the given window. Period must
// be positive; the caller validates configuration before building one.
func NewRollingMean(period int) *RollingMean {
	return &RollingMean{
		period: period,
		buf:    make([]float64, period),
	}
}

func (m *RollingMean) Reset() {
	m.head = 0
	m.count = 0
	m.sum = 0
	m.nans = 0
}

// Update pushes the next sample, evicting the oldest once the window is
// full.
func (m *RollingMean) Update(v float64) {
	if m.count == m.period {
		old := m.buf[m.head]
		if math.IsNaN(old) {
			m.nans--
		} else {
			m.sum -= old
		}
	} else {
		m.count++
	}
	m.buf[m.head] = v
	m.head = (m.head + 1) % m.period
	if math.IsNaN(v) {
		m.nans++
	} else {
		m.sum += v
	}
}

// Ready reports whether the window is full of defined samples.
func (m *RollingMean) Ready() bool {
	return m.count == m.period && m.nans == 0
}

// Value returns the mean of the current window, or NaN if the window is
// not yet full or any sample in it is undefined.
func (m *RollingMean) Value() float64 {
	if !m.Ready() {
		return math.NaN()
	}
	return m.sum / float64(m.period)
}

// RollingMax is a streaming fixed-window maximum using a monotonic deque,
// O(1) amortized per update.
type RollingMax struct {
	period int
	seq    int       // samples consumed so far
	idx    []int     // sample index of each candidate, ascending
	vals   []float64 // candidate values, strictly descending
}

func NewRollingMax(period int) *RollingMax {
	return &RollingMax{period: period}
}

func (m *RollingMax) Reset() {
	m.seq = 0
	m.idx = m.idx[:0]
	m.vals = m.vals[:0]
}

func (m *RollingMax) Update(v float64) {
	// Candidates dominated by the new sample can never be the max again.
	for n := len(m.vals); n > 0 && m.vals[n-1] <= v; n-- {
		m.vals = m.vals[:n-1]
		m.idx = m.idx[:n-1]
	}
	m.vals = append(m.vals, v)
	m.idx = append(m.idx, m.seq)
	m.seq++

	// Expire the front candidate once it leaves the window.
	if m.idx[0] <= m.seq-m.period-1 {
		m.idx = m.idx[1:]
		m.vals = m.vals[1:]
	}
}

func (m *RollingMax) Ready() bool {
	return m.seq >= m.period
}

// Value returns the maximum of the last `period` samples, or NaN before
// the window has filled.
func (m *RollingMax) Value() float64 {
	if !m.Ready() {
		return math.NaN()
	}
	return m.vals[0]
}
