package engine

// ─── Altitude Meter ─────────────────────────────────────────────────────────
// Display-only projection of the altitude total. The backend aggregate is
// authoritative; the meter exists so a delta can be shown as a bounded,
// monotonically stepped climb or descent instead of a jump.

// Meter holds the displayed altitude value and its configured floor.
type Meter struct {
	value int
	floor int
}

// NewMeter creates a meter seeded with the authoritative altitude.
// A start below the floor is clamped immediately.
func NewMeter(start, floor int) *Meter {
	if start < floor {
		start = floor
	}
	return &Meter{value: start, floor: floor}
}

// Value returns the currently displayed value.
func (m *Meter) Value() int { return m.value }

// Floor returns the configured display floor.
func (m *Meter) Floor() int { return m.floor }

// Apply moves the displayed value by delta, clamped at the floor, and
// returns every intermediate value in unit steps (target included, current
// value excluded). floored reports that the clamp fired, which callers
// must surface as a warning.
func (m *Meter) Apply(delta int) (steps []int, floored bool) {
	target := m.value + delta
	if target < m.floor {
		target = m.floor
		floored = true
	}

	dir := 1
	if target < m.value {
		dir = -1
	}
	for v := m.value + dir; ; v += dir {
		if (dir > 0 && v > target) || (dir < 0 && v < target) {
			break
		}
		steps = append(steps, v)
	}

	m.value = target
	return steps, floored
}
