package ecs

import (
	"reflect"
)

// Singleton gives typed access to a component that belongs to no entity,
// such as global game state or configuration. Declare it as a value field
// of a system and the Scheduler wires it on Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the singleton from the
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if _, ok := storage.singleton(t); !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it during
// system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

// Get returns the singleton, or nil while storage does not hold one.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if v, ok := s.storage.singleton(reflect.TypeFor[T]()); ok {
		s.ptr = v.Interface().(*T)
	}
}
