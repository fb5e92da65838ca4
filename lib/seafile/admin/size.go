package admin

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Size is an amount of storage in megabytes, rounded to one decimal.
type Size float64

// Unlimited marks a quota the server renders without a bound.
const Unlimited Size = -1

// units in increasing order, a unit is 1024 times its predecessor
var units = []string{"bytes", "kb", "mb", "gb", "tb"}

func (s Size) Known() bool {
	return s >= 0
}

func (s Size) String() string {
	if !s.Known() {
		return "unlimited"
	}
	return strconv.FormatFloat(float64(s), 'f', 1, 64)
}

func unitIndex(unit string) int {
	unit = strings.ToLower(unit)
	if unit == "b" || unit == "byte" {
		unit = "bytes"
	}
	return slices.Index(units, unit)
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseSize converts "<number> <unit>" into megabytes.
// ex. "512.00 MB" -> 512.0, "10 GB" -> 10240.0, "512 KB" -> 0.5
func ParseSize(text string) (Size, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, fmt.Errorf("parse size %q: expected <number> <unit>", text)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", text, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("parse size %q: negative size", text)
	}
	idx := unitIndex(fields[1])
	if idx < 0 {
		return 0, fmt.Errorf("parse size %q: unknown unit %q", text, fields[1])
	}
	mb := value * math.Pow(1024, float64(idx)) / math.Pow(1024, 2)
	return Size(roundOneDecimal(mb)), nil
}

// In converts the size back into the given unit.
func (s Size) In(unit string) (float64, error) {
	idx := unitIndex(unit)
	if idx < 0 {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
	return float64(s) * math.Pow(1024, 2) / math.Pow(1024, float64(idx)), nil
}

// ParseUsage parses the "<used> / <quota>" cell of the user listing. The
// two halves are parsed independently, a quota that is not a size (ex.
// "--" or "unlimited") becomes Unlimited.
func ParseUsage(text string) (used Size, quota Size, err error) {
	usedText, quotaText, _ := strings.Cut(text, "/")

	quota, quotaErr := ParseSize(strings.TrimSpace(quotaText))
	if quotaErr != nil {
		quota = Unlimited
	}

	used, err = ParseSize(strings.TrimSpace(usedText))
	if err != nil {
		return 0, quota, err
	}
	return used, quota, nil
}
