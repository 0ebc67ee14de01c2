// Package report narrates zoo outcomes as human-readable, localized messages
// and delivers them to a pluggable sink.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"

	"zoocore/pkg/domain"
)

// Sink accepts formatted narration lines.
type Sink interface {
	Emit(line string)
}

// WriterSink writes each line to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes line followed by a newline. Write errors are dropped: narration
// never affects zoo state.
func (s *WriterSink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}

// RecordingSink keeps every line in memory.
type RecordingSink struct {
	mu    sync.Mutex
	lines []string
}

// Emit records line.
func (s *RecordingSink) Emit(line string) {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

// Lines returns a copy of the recorded lines.
func (s *RecordingSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Discard drops every line.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Emit(string) {}

// Narrator formats admission outcomes, remaining square and food totals in one
// locale and emits them to a sink.
type Narrator struct {
	printer *message.Printer
	sink    Sink
	locale  string
}

// NewNarrator builds a narrator for the closest supported match of locale.
func NewNarrator(cat *Catalog, locale string, sink Sink) *Narrator {
	if sink == nil {
		sink = Discard
	}
	tag := cat.Match(locale)
	return &Narrator{
		printer: message.NewPrinter(tag, message.Catalog(cat.builder)),
		sink:    sink,
		locale:  tag.String(),
	}
}

// Locale returns the resolved locale tag.
func (n *Narrator) Locale() string { return n.locale }

// Rejected reports why an animal could not be accommodated.
func (n *Narrator) Rejected(animal domain.Animal, outcome domain.Outcome) {
	n.sink.Emit(n.printer.Sprintf(keyRejected, speciesName(animal), animal.Name, n.Reason(outcome)))
}

// Admissible reports that a checked animal could be accommodated.
func (n *Narrator) Admissible(animal domain.Animal) {
	n.sink.Emit(n.printer.Sprintf(keyPossible, speciesName(animal), animal.Name))
}

// RuleFailed reports that admission was refused because a rule errored.
func (n *Narrator) RuleFailed(animal domain.Animal, _ error) {
	n.sink.Emit(n.printer.Sprintf(keyRuleError, speciesName(animal), animal.Name))
}

// Admitted reports a successful admission and the enclosure's remaining square.
func (n *Narrator) Admitted(animal domain.Animal, remaining float64) {
	n.sink.Emit(n.printer.Sprintf(keyAccepted, speciesName(animal), animal.Name, humanize.Ftoa(remaining)))
}

// FoodTotal reports the zoo-wide daily food demand.
func (n *Narrator) FoodTotal(total float64) {
	n.sink.Emit(n.printer.Sprintf(keyFoodTotal, humanize.Ftoa(total)))
}

// Reason localizes the outcome's reason. Kinds without a catalog entry (plugin
// rules) fall back to the rule's own message.
func (n *Narrator) Reason(outcome domain.Outcome) string {
	if outcome.Kind == domain.KindNone {
		return outcome.Reason
	}
	key := reasonPrefix + string(outcome.Kind)
	if text := n.printer.Sprintf(key); text != key {
		return text
	}
	return outcome.Reason
}

func speciesName(a domain.Animal) string {
	if a.Species == nil {
		return ""
	}
	return a.Species.Name
}
