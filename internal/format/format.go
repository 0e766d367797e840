// Package format renders sizes, counts and dates for display.
package format

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

var compactUnits = []string{"", "K", "M", "B", "T"}

// HumanizeFileSize formats a byte count with base-1000 units and one decimal place
func HumanizeFileSize(size int64, space bool) string {
	i := 0
	if size > 0 {
		i = int(math.Floor(math.Log(float64(size)) / math.Log(1000)))
	}
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}

	s := strconv.FormatFloat(float64(size)/math.Pow(1000, float64(i)), 'f', 1, 64)
	if space {
		s += " "
	}
	return s + byteUnits[i]
}

// Number formats n with the digit grouping of tag
func Number(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// Compact formats v with at most three significant digits and a K/M/B/T suffix
func Compact(tag language.Tag, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	unit := 0
	for v >= 1000 && unit < len(compactUnits)-1 {
		v /= 1000
		unit++
	}
	v = roundSignificant(v, 3)
	// 999.95K rounds up to 1000K
	if v >= 1000 && unit < len(compactUnits)-1 {
		v = roundSignificant(v/1000, 3)
		unit++
	}

	return sign + message.NewPrinter(tag).Sprint(number.Decimal(v)) + compactUnits[unit]
}

// DateMed formats t like "Jan 15, 2023"
func DateMed(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Title capitalises each word of s using the rules of tag
func Title(tag language.Tag, s string) string {
	return cases.Title(tag).String(s)
}

func roundSignificant(v float64, digits int) float64 {
	if v == 0 {
		return 0
	}
	magnitude := math.Ceil(math.Log10(v))
	scale := math.Pow(10, float64(digits)-magnitude)
	return math.Round(v*scale) / scale
}
