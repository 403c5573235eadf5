package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPrefix starts every output directory name.
	DefaultPrefix = "source_crate"

	// TimestampLayout is the UTC timestamp embedded in directory names.
	TimestampLayout = "20060102_150405"

	// DefaultMaxAttempts bounds the collision suffixes tried (_2, _3, ...).
	DefaultMaxAttempts = 100
)

// Clock abstracts time so tests can pin directory names.
type Clock interface {
	NowUTC() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) NowUTC() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) NowUTC() time.Time {
	return time.Time(c).UTC()
}

// DirName returns the base output directory name for an extraction,
// e.g. "source_crate_demo_20260118_093000".
func DirName(prefix, program string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s", prefix, program, t.UTC().Format(TimestampLayout))
}

// candidateName returns the n-th name tried for base; n starts at 1.
func candidateName(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

// ParseDirName is the inverse of DirName plus the collision suffix. It
// reports the timestamp and attempt number (1 for an unsuffixed name) of a
// directory created for prefix and program.
func ParseDirName(prefix, program, name string) (time.Time, int, bool) {
	head := prefix + "_" + program + "_"
	rest, ok := strings.CutPrefix(name, head)
	if !ok || len(rest) < len(TimestampLayout) {
		return time.Time{}, 0, false
	}
	ts, err := time.Parse(TimestampLayout, rest[:len(TimestampLayout)])
	if err != nil {
		return time.Time{}, 0, false
	}
	suffix := rest[len(TimestampLayout):]
	if suffix == "" {
		return ts, 1, true
	}
	digits, ok := strings.CutPrefix(suffix, "_")
	if !ok {
		return time.Time{}, 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 2 {
		return time.Time{}, 0, false
	}
	return ts, n, true
}
