package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/scorestore"
)

// BucketWidth is the score range covered by one histogram row.
const BucketWidth = 50

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64

	// Results
	Games          int
	TotalScore     int
	MaxScore       int
	TotalLines     int
	TotalPlaced    int
	BestCombo      int
	BestSaves      int
	TotalTicks     int64
	TotalTime      time.Duration
	TickTime       Stats
	Histogram      []Bucket
	TopRuns        []scorestore.Run
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Bucket struct {
	From, To int
	Games    int
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) addGame(score int, stats puzzle.Stats) {
	r.Games++
	r.TotalScore += score
	r.MaxScore = max(r.MaxScore, score)
	r.TotalLines += stats.Lines
	r.TotalPlaced += stats.Placements
	r.BestCombo = max(r.BestCombo, stats.BestCombo)
}

func (r *Report) AvgScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Games)
}

func (r *Report) AvgLines() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalLines) / float64(r.Games)
}

// buckets flattens a bucket index to game count map into ascending rows.
func buckets(m *intmap.Map[int, int]) []Bucket {
	keys := make([]int, 0, m.Len())
	m.ForEach(func(k, _ int) bool {
		keys = append(keys, k)
		return true
	})
	slices.Sort(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		n, _ := m.Get(k)
		out = append(out, Bucket{From: k * BucketWidth, To: (k+1)*BucketWidth - 1, Games: n})
	}
	return out
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Report

## Configuration
- **Max Duration:** {{.Duration}}
- **Seed:** {{.Seed}}

## Games
- **Finished Games:** {{.Games}}
- **Avg Score:** {{printf "%.1f" .AvgScore}}
- **Max Score:** {{.MaxScore}}
- **Avg Lines:** {{printf "%.1f" .AvgLines}}
- **Pieces Placed:** {{.TotalPlaced}}
- **Best Combo:** {{.BestCombo}}
- **Best Score Writes:** {{.BestSaves}}

## Score Distribution
{{range .Histogram}}- {{printf "%5d" .From}}..{{printf "%-5d" .To}} {{bar .Games}} {{.Games}}
{{else}}- no finished games
{{end}}
{{- if .TopRuns}}
## Top Recorded Runs
{{range .TopRuns}}- {{.Score}} points, {{.Lines}} lines, {{.Placements}} pieces ({{.ID}})
{{end}}{{end}}
## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"bar": func(n int) string {
			return strings.Repeat("#", min(n, 60))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
