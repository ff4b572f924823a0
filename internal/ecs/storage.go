// Package ecs is a small entity component system: components live in
// per-type columns keyed by entity id, singletons hold global state, and a
// Scheduler runs systems once per tick.
package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// EntityId identifies a spawned entity. Ids are never reused.
type EntityId uint64

// ComponentRegistry lists the component types a Storage accepts.
type ComponentRegistry struct {
	types map[reflect.Type]struct{}
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{types: make(map[reflect.Type]struct{})}
}

// RegisterComponent registers T with the registry. It must be called for
// each component type before entities carrying it are spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.types[reflect.TypeFor[T]()] = struct{}{}
}

func (r *ComponentRegistry) registered(t reflect.Type) bool {
	_, ok := r.types[t]
	return ok
}

// column holds every instance of one component type.
type column struct {
	ids   []EntityId
	items []reflect.Value
	index *intmap.Map[EntityId, int]
}

func newColumn() *column {
	return &column{index: intmap.New[EntityId, int](16)}
}

func (c *column) add(id EntityId, item reflect.Value) {
	if i, ok := c.index.Get(id); ok {
		c.items[i] = item
		return
	}
	c.index.Put(id, len(c.ids))
	c.ids = append(c.ids, id)
	c.items = append(c.items, item)
}

func (c *column) get(id EntityId) (reflect.Value, bool) {
	i, ok := c.index.Get(id)
	if !ok {
		return reflect.Value{}, false
	}
	return c.items[i], true
}

// remove swaps the last instance into the freed slot.
func (c *column) remove(id EntityId) {
	i, ok := c.index.Get(id)
	if !ok {
		return
	}
	last := len(c.ids) - 1
	if i != last {
		c.ids[i] = c.ids[last]
		c.items[i] = c.items[last]
		c.index.Put(c.ids[i], i)
	}
	c.ids = c.ids[:last]
	c.items[last] = reflect.Value{}
	c.items = c.items[:last]
	c.index.Del(id)
}

// Storage owns entities, their components and the singletons.
type Storage struct {
	registry   *ComponentRegistry
	nextId     EntityId
	columns    map[reflect.Type]*column
	entities   *intmap.Map[EntityId, []reflect.Type]
	singletons map[reflect.Type]reflect.Value
}

// NewStorage creates an empty storage that accepts the registry's
// component types.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		nextId:     1,
		columns:    make(map[reflect.Type]*column),
		entities:   intmap.New[EntityId, []reflect.Type](64),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Spawn creates an entity with the given components. It panics when no
// component is given, a type is unregistered or repeated.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	values := make([]reflect.Value, len(components))
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		v := componentValue(comp)
		if !s.registry.registered(v.Type()) {
			panic(fmt.Sprintf("ecs: component %s is not registered", v.Type()))
		}
		for _, seen := range types[:i] {
			if seen == v.Type() {
				panic(fmt.Sprintf("ecs: component %s given twice", v.Type()))
			}
		}
		values[i] = v
		types[i] = v.Type()
	}

	id := s.nextId
	s.nextId++
	for i, v := range values {
		item := reflect.New(types[i])
		item.Elem().Set(v)
		s.column(types[i]).add(id, item)
	}
	s.entities.Put(id, types)

	return id
}

// Delete removes the entity and all of its components. Unknown ids are
// ignored.
func (s *Storage) Delete(id EntityId) {
	types, ok := s.entities.Get(id)
	if !ok {
		return
	}
	for _, t := range types {
		s.columns[t].remove(id)
	}
	s.entities.Del(id)
}

// Alive reports whether id has been spawned and not deleted.
func (s *Storage) Alive(id EntityId) bool {
	return s.entities.Has(id)
}

// Len is the number of live entities.
func (s *Storage) Len() int {
	return s.entities.Len()
}

// GetComponent returns a pointer to the entity's component of type t, or
// nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	c, ok := s.columns[t]
	if !ok {
		return nil
	}
	item, ok := c.get(id)
	if !ok {
		return nil
	}
	return item.Interface()
}

// ReadComponent is the typed form of Storage.GetComponent.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	comp := s.GetComponent(id, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one in place.
func (s *Storage) AddSingleton(value any) {
	v := componentValue(value)
	if existing, ok := s.singletons[v.Type()]; ok {
		existing.Elem().Set(v)
		return
	}
	item := reflect.New(v.Type())
	item.Elem().Set(v)
	s.singletons[v.Type()] = item
}

func (s *Storage) singleton(t reflect.Type) (reflect.Value, bool) {
	v, ok := s.singletons[t]
	return v, ok
}

func (s *Storage) column(t reflect.Type) *column {
	c, ok := s.columns[t]
	if !ok {
		c = newColumn()
		s.columns[t] = c
	}
	return c
}

// componentValue dereferences pointers and rejects kinds that cannot be
// stored by value.
func componentValue(comp any) reflect.Value {
	v := reflect.ValueOf(comp)
	if !v.IsValid() {
		panic("ecs: nil component")
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			panic(fmt.Sprintf("ecs: nil %s component", v.Type()))
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic(fmt.Sprintf("ecs: component %s must be a value type", v.Type()))
	}
	return v
}
