// Package screen composes the sample list and the sample detail screen.
//
// The screens hold no rendering logic. List forwards a selection to a
// navigation callback; Detail maps host lifecycle events onto a
// renderer.Controller and a host.Host.
package screen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/sample"
)

// ErrUnknownSample is returned when selecting a sample that is not listed.
var ErrUnknownSample = errors.New("screen: unknown sample")

// List is the sample list screen.
type List struct {
	reg      *sample.Registry
	navigate func(sample.Sample)
}

// NewList returns a list over reg. navigate receives the selected sample;
// a nil reg uses sample.Default().
func NewList(reg *sample.Registry, navigate func(sample.Sample)) *List {
	if reg == nil {
		reg = sample.Default()
	}
	return &List{reg: reg, navigate: navigate}
}

// Samples returns the listed samples in order.
func (l *List) Samples() []sample.Sample {
	return l.reg.All()
}

// Select navigates to the sample with the given ID.
func (l *List) Select(id sample.ID) error {
	s, ok := l.reg.ByID(id)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownSample, id)
	}
	l.open(s)
	return nil
}

// SelectTitle navigates to the sample matched by selector, which is either
// a decimal ID or a title compared case-insensitively.
func (l *List) SelectTitle(selector string) error {
	s, ok := l.reg.Lookup(selector)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSample, selector)
	}
	l.open(s)
	return nil
}

func (l *List) open(s sample.Sample) {
	shaderview.Logger().Debug("screen: sample selected",
		slog.Int("sample", int(s.ID)), slog.String("title", s.Title))
	if l.navigate != nil {
		l.navigate(s)
	}
}
