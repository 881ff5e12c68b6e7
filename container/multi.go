package container

import (
	"errors"
	"fmt"
)

var ErrUnknownDestination = errors.New("unknown destination")

// Multi partitions a keyed namespace into per-destination containers. Each
// destination keeps its own CREATE/UPDATE semantics and can be frozen alone.
type Multi[K comparable, V any, D comparable] struct {
	dests []D
	parts map[D]*Container[K, V]
}

// NewMulti creates a container with one partition per destination, in the
// order given.
func NewMulti[K comparable, V any, D comparable](dests ...D) *Multi[K, V, D] {
	m := &Multi[K, V, D]{parts: make(map[D]*Container[K, V], len(dests))}
	for _, d := range dests {
		if _, ok := m.parts[d]; ok {
			continue
		}
		m.dests = append(m.dests, d)
		m.parts[d] = New[K, V]()
	}
	return m
}

func (m *Multi[K, V, D]) part(dest D) (*Container[K, V], error) {
	c, ok := m.parts[dest]
	if !ok {
		return nil, fmt.Errorf("%v: %w", dest, ErrUnknownDestination)
	}
	return c, nil
}

// Add stores value under key in the partition selected by dest.
func (m *Multi[K, V, D]) Add(key K, value V, dest D, mode Mode) error {
	c, err := m.part(dest)
	if err != nil {
		return err
	}
	if err := c.Add(key, value, mode); err != nil {
		return fmt.Errorf("%v: %w", dest, err)
	}
	return nil
}

// Get looks key up in the partition selected by dest.
func (m *Multi[K, V, D]) Get(key K, dest D) (V, bool) {
	c, ok := m.parts[dest]
	if !ok {
		var zero V
		return zero, false
	}
	return c.Get(key)
}

// Values returns values of a single partition in insertion order. Unknown
// destinations yield nothing.
func (m *Multi[K, V, D]) Values(dest D) []V {
	c, ok := m.parts[dest]
	if !ok {
		return nil
	}
	return c.Values()
}

// Destinations returns partitions tags in creation order.
func (m *Multi[K, V, D]) Destinations() []D {
	out := make([]D, len(m.dests))
	copy(out, m.dests)
	return out
}

// FreezeDest freezes the partition selected by dest only.
func (m *Multi[K, V, D]) FreezeDest(dest D) error {
	c, err := m.part(dest)
	if err != nil {
		return err
	}
	c.Freeze()
	return nil
}

// FrozenDest reports whether partition selected by dest is frozen.
func (m *Multi[K, V, D]) FrozenDest(dest D) bool {
	c, ok := m.parts[dest]
	return ok && c.Frozen()
}

// Freeze freezes every partition.
func (m *Multi[K, V, D]) Freeze() {
	for _, c := range m.parts {
		c.Freeze()
	}
}

func (m *Multi[K, V, D]) Frozen() bool {
	for _, c := range m.parts {
		if !c.Frozen() {
			return false
		}
	}
	return len(m.parts) > 0
}
