// Package container provides ordered keyed collections used to guarantee
// uniqueness of everything that ends up in the output document.
package container

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMissingKey   = errors.New("missing key")
	ErrFrozen       = errors.New("container is frozen")
)

// Container is an ordered mapping from unique keys to values. Iteration
// follows first insertion order, replacing a value keeps its position.
// NOTE: not safe for concurrent use.
type Container[K comparable, V any] struct {
	values map[K]V
	order  []K
	frozen bool
}

// New creates an empty container.
func New[K comparable, V any]() *Container[K, V] {
	return &Container[K, V]{values: make(map[K]V)}
}

// Add stores value under key according to mode. The container is left
// untouched when an error is returned.
func (c *Container[K, V]) Add(key K, value V, mode Mode) error {
	if c.frozen {
		return fmt.Errorf("unable to add %v: %w", key, ErrFrozen)
	}
	_, exists := c.values[key]
	switch mode {
	case ModeCreate:
		if exists {
			return fmt.Errorf("unable to create %v: %w", key, ErrDuplicateKey)
		}
	case ModeUpdate:
		if !exists {
			return fmt.Errorf("unable to update %v: %w", key, ErrMissingKey)
		}
	case ModeCreateOrUpdate:
	default:
		return fmt.Errorf("unable to add %v: %w", key, ErrInvalidMode)
	}
	if !exists {
		c.order = append(c.order, key)
	}
	c.values[key] = value
	return nil
}

// Get returns the value stored under key.
func (c *Container[K, V]) Get(key K) (V, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Values returns all values in insertion order.
func (c *Container[K, V]) Values() []V {
	out := make([]V, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.values[k])
	}
	return out
}

// Keys returns all keys in insertion order.
func (c *Container[K, V]) Keys() []K {
	out := make([]K, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Container[K, V]) Len() int {
	return len(c.order)
}

// Freeze makes container immutable, every later Add fails with ErrFrozen.
func (c *Container[K, V]) Freeze() {
	c.frozen = true
}

func (c *Container[K, V]) Frozen() bool {
	return c.frozen
}
