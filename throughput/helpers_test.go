package throughput

import (
	"sync"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

type update struct {
	done         bool
	total, added uint32
}

type progressRecorder struct {
	mu      sync.Mutex
	updates []update
}

func (p *progressRecorder) Update(done bool, total, added uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, update{done, total, added})
}

type resultRecorder struct {
	results []Result
}

func (r *resultRecorder) Report(res Result) {
	r.results = append(r.results, res)
}

type countingObserver struct {
	received  int
	replied   int
	malformed int
	dropped   int
	completed []Result
}

func (o *countingObserver) Received(_ wsnperf.Protocol, n int) { o.received += n }
func (o *countingObserver) Replied()                           { o.replied++ }
func (o *countingObserver) Malformed()                         { o.malformed++ }
func (o *countingObserver) Dropped()                           { o.dropped++ }
func (o *countingObserver) Completed(r Result)                 { o.completed = append(o.completed, r) }

type logRecorder struct {
	wsnperf.NopLogger
	mu     sync.Mutex
	errors []string
}

func (l *logRecorder) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, format)
}
