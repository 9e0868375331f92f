// Package profiler records hierarchical timing samples for named code scopes.
//
// A sample is keyed by its scope name and the id of the scope that was open
// when it started, so the same name reached through two call paths produces
// two samples. A Profiler keeps a single call stack and must be owned by one
// goroutine; concurrent renders give each worker its own Profiler and Merge
// them afterwards. A nil *Profiler is valid and records nothing.
package profiler

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/base/ordmap"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// rootID is the parent id of top-level samples
const rootID = -1

// Sample is one named, call-stack-scoped timing record
type Sample struct {
	Name    string        // Scope name
	ID      int           // Discovery index, stable for the profiler's lifetime
	Parent  int           // ID of the enclosing sample, or -1 at the top level
	Calls   int           // Completed Start/End pairs
	Elapsed time.Duration // Cumulative time between Start and End
	Alive   bool          // Started but not yet ended

	started time.Time
}

type sampleKey struct {
	name   string
	parent int
}

// Handle identifies an open scope returned by Start
type Handle struct {
	p  *Profiler
	id int
}

// Profiler is a hierarchical sampling recorder
type Profiler struct {
	samples *ordmap.Map[sampleKey, *Sample]
	stack   []int
	created time.Time
	now     func() time.Time
	logger  *slog.Logger
}

// New creates an enabled profiler. The session clock starts now.
func New(logger *slog.Logger) *Profiler {
	p := &Profiler{
		samples: ordmap.New[sampleKey, *Sample](),
		now:     time.Now,
		logger:  core.LoggerOrNop(logger),
	}
	p.created = p.now()
	return p
}

// Enabled reports whether the profiler records samples
func (p *Profiler) Enabled() bool {
	return p != nil
}

// Start opens the scope name under the current top of the stack.
// It panics if that scope is already open.
func (p *Profiler) Start(name string) Handle {
	if p == nil {
		return Handle{}
	}
	if name == "" {
		panic("profiler: empty scope name")
	}

	key := sampleKey{name: name, parent: p.top()}
	s, ok := p.samples.ValueByKeyTry(key)
	if !ok {
		s = &Sample{Name: name, ID: p.samples.Len(), Parent: key.parent}
		p.samples.Add(key, s)
	}
	if s.Alive {
		panic(fmt.Sprintf("profiler: scope %q re-entered while open", name))
	}

	p.stack = append(p.stack, s.ID)
	s.Alive = true
	s.started = p.now()
	return Handle{p: p, id: s.ID}
}

// End closes the scope h. It panics unless h is the innermost open scope.
func (p *Profiler) End(h Handle) {
	if p == nil {
		return
	}
	if h.p != p || len(p.stack) == 0 || p.stack[len(p.stack)-1] != h.id {
		panic(fmt.Sprintf("profiler: End(%d) does not match the open scope", h.id))
	}

	s := p.samples.ValueByIndex(h.id)
	s.Alive = false
	s.Calls++
	s.Elapsed += p.now().Sub(s.started)
	p.stack = p.stack[:len(p.stack)-1]
}

// Scope starts name and returns the function that ends it, for use with defer
func (p *Profiler) Scope(name string) func() {
	if p == nil {
		return func() {}
	}
	h := p.Start(name)
	return func() { p.End(h) }
}

// Depth returns the number of open scopes
func (p *Profiler) Depth() int {
	if p == nil {
		return 0
	}
	return len(p.stack)
}

// Samples returns a copy of every sample in discovery order
func (p *Profiler) Samples() []Sample {
	if p == nil {
		return nil
	}
	out := make([]Sample, 0, p.samples.Len())
	for _, s := range p.samples.Values() {
		out = append(out, *s)
	}
	return out
}

// Lookup returns the sample reached by following names from the top level
func (p *Profiler) Lookup(path ...string) (Sample, bool) {
	if p == nil {
		return Sample{}, false
	}
	parent := rootID
	var s *Sample
	for _, name := range path {
		var ok bool
		s, ok = p.samples.ValueByKeyTry(sampleKey{name: name, parent: parent})
		if !ok {
			return Sample{}, false
		}
		parent = s.ID
	}
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}

// Elapsed returns the wall time since the profiler was created
func (p *Profiler) Elapsed() time.Duration {
	if p == nil {
		return 0
	}
	return p.now().Sub(p.created)
}

// Merge adds the closed samples of other into p, nested under p's innermost
// open scope. Samples are matched by name path; calls and durations are summed.
func (p *Profiler) Merge(other *Profiler) {
	if p == nil || other == nil {
		return
	}

	// Discovery order guarantees parents are visited before their children
	mapped := make(map[int]int, other.samples.Len())
	mapped[rootID] = p.top()

	for _, s := range other.samples.Values() {
		if s.Alive {
			p.logger.Warn("merging profiler sample that is still open", "sample", s.Name)
		}
		key := sampleKey{name: s.Name, parent: mapped[s.Parent]}
		dst, ok := p.samples.ValueByKeyTry(key)
		if !ok {
			dst = &Sample{Name: s.Name, ID: p.samples.Len(), Parent: key.parent}
			p.samples.Add(key, dst)
		}
		dst.Calls += s.Calls
		dst.Elapsed += s.Elapsed
		mapped[s.ID] = dst.ID
	}
}

func (p *Profiler) top() int {
	if len(p.stack) == 0 {
		return rootID
	}
	return p.stack[len(p.stack)-1]
}
