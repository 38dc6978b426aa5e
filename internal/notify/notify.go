// Package notify delivers dependency configuration warnings.
package notify

import (
	"fmt"
	"io"
	"sync"

	"rnconfig/internal/logger"
	"rnconfig/internal/resolver"
)

// LogNotifier writes each warning as a zerolog warning event.
type LogNotifier struct {
	log    *logger.Logger
	styles styles
}

// NewLogNotifier creates a LogNotifier. term is the writer the log ends up
// on; it decides whether the text is styled.
func NewLogNotifier(log *logger.Logger, term io.Writer) *LogNotifier {
	return &LogNotifier{
		log:    log,
		styles: newStyles(term),
	}
}

// Warn implements resolver.Notifier.
func (n *LogNotifier) Warn(w resolver.Warning) {
	n.log.Warn().
		Str("dependency", w.Dependency).
		Str("source", w.Source).
		Msg(n.Format(w))
}

// Format renders the text shown to users for w.
func (n *LogNotifier) Format(w resolver.Warning) string {
	return fmt.Sprintf(
		"Package %s contains invalid configuration: %s. "+
			"Please verify it's properly linked using \"rnconfig config\" command "+
			"and contact the package maintainers about this.",
		n.styles.name.Render(w.Dependency),
		n.styles.message.Render(w.Message),
	)
}

// Collector records warnings and forwards them to an optional next notifier.
type Collector struct {
	next resolver.Notifier

	mu       sync.Mutex
	warnings []resolver.Warning
}

// NewCollector creates a Collector. next may be nil.
func NewCollector(next resolver.Notifier) *Collector {
	return &Collector{next: next}
}

// Warn implements resolver.Notifier.
func (c *Collector) Warn(w resolver.Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()

	if c.next != nil {
		c.next.Warn(w)
	}
}

// Warnings returns a copy of the recorded warnings in arrival order.
func (c *Collector) Warnings() []resolver.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]resolver.Warning(nil), c.warnings...)
}
