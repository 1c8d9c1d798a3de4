package service

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateService indicates a name is already registered.
	ErrDuplicateService = errors.New("duplicate service")
	// ErrInvalidService indicates a service misses required fields.
	ErrInvalidService = errors.New("invalid service")
)

// Action consumes one item pulled from a Source.
type Action func(ctx context.Context, item interface{}) error

// Service is a named periodic action bound to a source.
type Service struct {
	Name     string
	Action   Action
	Source   Source
	Interval time.Duration
	// Priority breaks ties between coinciding fire times,
	// lower value fires first.
	Priority int
}

// New creates a Service firing at frequency Hz.
func New(name string, action Action, source Source, frequency float64, priority int) *Service {
	var interval time.Duration
	if frequency > 0 {
		interval = time.Duration(float64(time.Second) / frequency)
	}
	return &Service{
		Name:     name,
		Action:   action,
		Source:   source,
		Interval: interval,
		Priority: priority,
	}
}

func (s *Service) validate() error {
	switch {
	case s.Name == "":
		return errors.New("service name required")
	case s.Action == nil:
		return errors.New("service action required")
	case s.Source == nil:
		return errors.New("service source required")
	case s.Interval <= 0:
		return errors.New("service interval must be positive")
	}
	return nil
}
