package scheduler

import "time"

// Config controls the recurring order materializer.
type Config struct {
	// RunInterval is how often cadenced customers are scanned.
	RunInterval time.Duration
	// LeadDays is how far ahead of the due date the next order is
	// created. Must stay below the shortest cadence (one week) or the
	// same visit would be materialized twice.
	LeadDays int
}

func DefaultConfig() Config {
	return Config{
		RunInterval: time.Hour,
		LeadDays:    3,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.LeadDays <= 0 {
		c.LeadDays = defaults.LeadDays
	}
	return c
}
