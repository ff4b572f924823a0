package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Query iterates the entities that carry every component named by T. T is
// a struct of component pointers, optionally with an EntityId field:
//
//	Items ecs.Query[struct {
//		ecs.EntityId
//		*Position
//		*Sprite
//	}]
type Query[T any] struct {
	storage *Storage
	fields  []queryField
	idField int
}

type queryField struct {
	index int
	typ   reflect.Type
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewQuery creates a query over storage. It panics if T is not a valid
// query struct.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it during system
// registration.
func (q *Query[T]) Init(storage *Storage) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ecs: query type %s is not a struct", t))
	}

	q.storage = storage
	q.fields = q.fields[:0]
	q.idField = -1
	for i := range t.NumField() {
		f := t.Field(i)
		switch {
		case f.Type == entityIdType:
			q.idField = i
		case f.Type.Kind() == reflect.Pointer:
			q.fields = append(q.fields, queryField{index: i, typ: f.Type.Elem()})
		default:
			panic(fmt.Sprintf("ecs: query field %s must be a component pointer or EntityId", f.Name))
		}
	}
}

// All yields each matching entity with its components. Structural changes
// made while iterating are not observed by the running iteration.
func (q *Query[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		driver, ok := q.driver()
		if !ok {
			return
		}

		for _, id := range slices.Clone(driver.ids) {
			var result T
			if !q.fill(id, reflect.ValueOf(&result).Elem()) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields the components of each matching entity.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count is the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.All() {
		n++
	}
	return n
}

// driver picks the smallest column among the required components.
func (q *Query[T]) driver() (*column, bool) {
	if q.storage == nil || len(q.fields) == 0 {
		return nil, false
	}
	var driver *column
	for _, f := range q.fields {
		c, ok := q.storage.columns[f.typ]
		if !ok {
			return nil, false
		}
		if driver == nil || len(c.ids) < len(driver.ids) {
			driver = c
		}
	}
	return driver, true
}

func (q *Query[T]) fill(id EntityId, result reflect.Value) bool {
	for _, f := range q.fields {
		item, ok := q.storage.columns[f.typ].get(id)
		if !ok {
			return false
		}
		result.Field(f.index).Set(item)
	}
	if q.idField >= 0 {
		result.Field(q.idField).SetUint(uint64(id))
	}
	return true
}
