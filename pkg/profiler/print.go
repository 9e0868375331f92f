package profiler

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Order selects how sibling samples are arranged when printing
type Order int

const (
	// OrderDiscovery prints siblings in the order they were first started
	OrderDiscovery Order = iota
	// OrderCalls prints siblings by descending call count
	OrderCalls
)

// ParseOrder converts "discovery" or "calls" to an Order
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "discovery":
		return OrderDiscovery, nil
	case "calls":
		return OrderCalls, nil
	default:
		return OrderDiscovery, fmt.Errorf("unknown profile order %q", s)
	}
}

// String returns the flag spelling of the order
func (o Order) String() string {
	if o == OrderCalls {
		return "calls"
	}
	return "discovery"
}

const minNameWidth = 15

// Print writes the sample forest as an indented table of name, calls,
// seconds and share of the profiler's wall time.
func (p *Profiler) Print(w io.Writer, order Order) error {
	if p == nil {
		slog.Warn("Ignoring print, profiler deactivated")
		return nil
	}

	total := p.Elapsed().Seconds()
	samples := p.samples.Values()

	children := make(map[int][]*Sample)
	for _, s := range samples {
		children[s.Parent] = append(children[s.Parent], s)
	}
	if order == OrderCalls {
		for _, kids := range children {
			slices.SortStableFunc(kids, func(a, b *Sample) int {
				return b.Calls - a.Calls
			})
		}
	}

	nameWidth := minNameWidth
	var measure func(parent, depth int)
	measure = func(parent, depth int) {
		for _, s := range children[parent] {
			nameWidth = max(nameWidth, depth*2+len(s.Name))
			measure(s.ID, depth+1)
		}
	}
	measure(rootID, 0)

	var b strings.Builder
	title := fmt.Sprintf("%-*s %20s %14s %12s", nameWidth, "name", "calls", "sec", "prop")
	divider := strings.Repeat("-", len(title)+2)
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", divider, title, divider)

	var walk func(parent, depth int)
	walk = func(parent, depth int) {
		for _, s := range children[parent] {
			if s.Alive {
				p.logger.Warn("profiler sample is still alive", "sample", s.Name)
			}
			sec := s.Elapsed.Seconds()
			prop := 0.0
			if total > 0 {
				prop = sec / total
			}
			name := strings.Repeat(" ", depth*2) + s.Name
			fmt.Fprintf(&b, "%-*s %20d %14.3f %12.2f%%\n", nameWidth, name, s.Calls, sec, prop*100)
			walk(s.ID, depth+1)
		}
	}
	walk(rootID, 0)

	fmt.Fprintf(&b, "%s\n\n", divider)

	_, err := io.WriteString(w, b.String())
	return err
}
