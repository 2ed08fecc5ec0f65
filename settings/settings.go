// Package settings holds the named device parameters that SMS commands
// change, such as a minimum temperature or a per-zone set point.
package settings

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrUnknownSetting is returned when a name was never defined.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrKind is returned when a scalar is accessed as an array or the
	// other way round.
	ErrKind = errors.New("setting has a different kind")

	// ErrIndex is returned for an array index outside the array.
	ErrIndex = errors.New("array index out of range")
)

// Store is a concurrency-safe set of scalar and fixed-length array
// parameters. Values are float64; integer commands store whole numbers.
type Store struct {
	mu      sync.RWMutex
	scalars map[string]float64
	arrays  map[string][]float64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		scalars: make(map[string]float64),
		arrays:  make(map[string][]float64),
	}
}

// DefineScalar adds a scalar with an initial value. Redefining a name
// resets it.
func (s *Store) DefineScalar(name string, initial float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.arrays, name)
	s.scalars[name] = initial
}

// DefineArray adds an array of n zero values.
func (s *Store) DefineArray(name string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scalars, name)
	s.arrays[name] = make([]float64, n)
}

func (s *Store) Scalar(name string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.scalars[name]
	if !ok {
		return 0, s.missing(name)
	}
	return v, nil
}

func (s *Store) SetScalar(name string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scalars[name]; !ok {
		return s.missing(name)
	}
	s.scalars[name] = v
	return nil
}

// Array returns a copy of the named array.
func (s *Store) Array(name string) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.arrays[name]
	if !ok {
		return nil, s.missing(name)
	}
	return slices.Clone(a), nil
}

// Len returns the length of the named array.
func (s *Store) Len(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.arrays[name]
	if !ok {
		return 0, s.missing(name)
	}
	return len(a), nil
}

func (s *Store) SetElement(name string, i int, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.arrays[name]
	if !ok {
		return s.missing(name)
	}
	if i < 0 || i >= len(a) {
		return fmt.Errorf("%w: %s[%d], length %d", ErrIndex, name, i, len(a))
	}
	a[i] = v
	return nil
}

// Snapshot returns every parameter: float64 for scalars and []float64
// for arrays.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.scalars)+len(s.arrays))
	for k, v := range s.scalars {
		out[k] = v
	}
	for k, a := range s.arrays {
		out[k] = slices.Clone(a)
	}
	return out
}

// Names returns the sorted names of all parameters.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := slices.Collect(maps.Keys(s.scalars))
	names = slices.AppendSeq(names, maps.Keys(s.arrays))
	slices.Sort(names)
	return names
}

// missing must be called with the lock held.
func (s *Store) missing(name string) error {
	_, isScalar := s.scalars[name]
	_, isArray := s.arrays[name]
	if isScalar || isArray {
		return fmt.Errorf("%w: %s", ErrKind, name)
	}
	return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
}
