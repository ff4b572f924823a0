package ecs

import (
	"reflect"
	"time"
)

// SchedulerStats summarises how often and how long systems have run.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats are the timings of one registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system System
	stats  SystemStats
}

// Scheduler runs its systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*systemEntry
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// initializer is implemented by Query and Singleton.
type initializer interface {
	Init(*Storage)
}

// Register appends system and binds its exported Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	s.bind(system)

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.systems = append(s.systems, &systemEntry{
		system: system,
		stats:  SystemStats{Name: t.Name()},
	})
}

func (s *Scheduler) bind(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if init, ok := field.Addr().Interface().(initializer); ok {
			init.Init(s.storage)
		}
	}
}

// Once runs every system with the given delta time, then flushes the
// commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

func (e *systemEntry) record(d time.Duration) {
	st := &e.stats
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		stats.Systems[i] = entry.stats
		stats.TotalExecutions += entry.stats.ExecutionCount
	}
	return stats
}
