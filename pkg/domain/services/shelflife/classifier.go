// Package shelflife turns arrival and expiry dates into a three-state risk status.
package shelflife

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned when classifier thresholds are out of range
var ErrInvalidConfig = errors.New("invalid shelf life config")

// Config holds the classifier thresholds
type Config struct {
	// WarningProgress is the consumed fraction of the shelf-life window at
	// which a product turns Warning.
	WarningProgress float64 `yaml:"warning_progress"`
	// FallbackDays is the days-remaining threshold used when no valid
	// arrival date is known.
	FallbackDays int `yaml:"fallback_days"`
}

// DefaultConfig returns the thresholds used by the back office screens
func DefaultConfig() Config {
	return Config{
		WarningProgress: 0.8,
		FallbackDays:    2,
	}
}

// Validate checks that the thresholds are usable
func (c Config) Validate() error {
	if math.IsNaN(c.WarningProgress) || c.WarningProgress <= 0 || c.WarningProgress > 1 {
		return fmt.Errorf("%w: warning progress must be in (0, 1], got %v", ErrInvalidConfig, c.WarningProgress)
	}
	if c.FallbackDays < 0 {
		return fmt.Errorf("%w: fallback days cannot be negative, got %d", ErrInvalidConfig, c.FallbackDays)
	}
	return nil
}

// Classifier decides the shelf-life status of a product
type Classifier struct {
	config Config
	now    func() time.Time
}

// NewClassifier creates a classifier with validated thresholds
func NewClassifier(config Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{config: config, now: time.Now}, nil
}

var defaultClassifier = &Classifier{config: DefaultConfig(), now: time.Now}

// Default returns a classifier using DefaultConfig
func Default() *Classifier {
	return defaultClassifier
}

// Classify is shorthand for Default().Classify
func Classify(expiry, arrival, reference time.Time) Status {
	return defaultClassifier.Classify(expiry, arrival, reference)
}

// Config returns the classifier thresholds
func (c *Classifier) Config() Config {
	return c.config
}

// ClassifyNow classifies against the current day
func (c *Classifier) ClassifyNow(expiry, arrival time.Time) Status {
	return c.Classify(expiry, arrival, c.now())
}

// Classify returns the status of a product expiring on expiry that arrived on
// arrival, as seen on reference. A zero time means the date is unknown; a zero
// reference means today. Time of day is ignored.
func (c *Classifier) Classify(expiry, arrival, reference time.Time) Status {
	if expiry.IsZero() {
		return Ok
	}
	if reference.IsZero() {
		reference = c.now()
	}

	e := startOfDay(expiry)
	r := startOfDay(reference)
	if !e.After(r) {
		return Expired
	}

	if arrival.IsZero() || !startOfDay(arrival).Before(e) {
		if daysBetween(r, e) <= c.config.FallbackDays {
			return Warning
		}
		return Ok
	}

	a := startOfDay(arrival)
	totalDays := daysBetween(a, e)
	if totalDays == 0 {
		return Expired
	}

	elapsed := daysBetween(a, r)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > totalDays {
		elapsed = totalDays
	}

	progress := float64(elapsed) / float64(totalDays)
	if progress >= c.config.WarningProgress {
		return Warning
	}
	return Ok
}

// startOfDay keeps the calendar date of t and drops the clock, so that dates
// recorded in different zones compare by the day printed on the label.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
