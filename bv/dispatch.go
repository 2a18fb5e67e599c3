package bv

import (
	"os"
	"strconv"
)

// DispatchLevel identifies the kernel family used for the whole-element body
// of bulk operations on Plain stores.
type DispatchLevel int

const (
	// DispatchScalar processes the body one element at a time.
	DispatchScalar DispatchLevel = iota

	// DispatchWord views the body as bytes and processes 64 bits per step,
	// whatever the element width.
	DispatchWord
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchWord:
		return "word"
	default:
		return "unknown"
	}
}

// currentLevel is the kernel family for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// CurrentLevel returns the kernel family in use.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentName returns the name of the kernel family in use.
func CurrentName() string {
	return currentLevel.String()
}

// NoWideEnv checks if the BV_NO_WIDE environment variable is set.
// When set, bulk operations use scalar kernels regardless of CPU features.
func NoWideEnv() bool {
	val := os.Getenv("BV_NO_WIDE")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setLevel(level DispatchLevel) {
	currentLevel = level
	log.WithField("level", level).Debug("Selected body kernels")
}
