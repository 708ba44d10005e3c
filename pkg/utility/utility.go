package utility

import (
	"errors"
	"strings"
	"time"

	"lab.nexedi.com/kirr/go123/xfmt"
)

// ErrNotDigits is returned when a run expected to hold only ASCII digits holds
// something else
var ErrNotDigits = errors.New("couldn't parse number")

// Atoi2 convert string of length 2 to int
func Atoi2(in string) (int, error) {
	if len(in) != 2 {
		return 0, ErrNotDigits
	}
	_ = in[1] // This helps the compiler reduce the number of times it checks `in` is long enough
	a, b := int(in[0])-'0', int(in[1])-'0'
	if a < 0 || a > 9 || b < 0 || b > 9 {
		return 0, ErrNotDigits
	}
	return a*10 + b, nil
}

// Atoi4 convert string of length 4 to int
func Atoi4(in string) (int, error) {
	if len(in) != 4 {
		return 0, ErrNotDigits
	}
	_ = in[3] // This helps the compiler reduce the number of times it checks `in` is long enough
	a, b, c, d := int(in[0])-'0', int(in[1])-'0', int(in[2])-'0', int(in[3])-'0'
	if a < 0 || a > 9 || b < 0 || b > 9 || c < 0 || c > 9 || d < 0 || d > 9 {
		return 0, ErrNotDigits
	}
	return a*1000 + b*100 + c*10 + d, nil
}

// AtoiN convert a short run of ASCII digits to int. Signs, spaces and empty
// input are rejected. Runs longer than 9 digits are rejected so the result
// always fits in an int.
func AtoiN(in string) (int, error) {
	if len(in) == 0 || len(in) > 9 {
		return 0, ErrNotDigits
	}
	var n int
	for i := 0; i < len(in); i++ {
		c := int(in[i]) - '0'
		if c < 0 || c > 9 {
			return 0, ErrNotDigits
		}
		n = n*10 + c
	}
	return n, nil
}

// BytesToString convert byte list to string with no allocation
//
// A small cost a few ns in testing is incurred for using a string builder.
// There are no heap allocations using strings.Builder.
func BytesToString(bytes ...byte) string {
	var sb = new(strings.Builder)
	for i := 0; i < len(bytes); i++ {
		sb.WriteByte(bytes[i])
	}
	return sb.String()
}

// PadD write a non-negative int into buf zero padded to width digits. Values
// wider than width are written in full.
func PadD(buf *xfmt.Buffer, in int, width int) *xfmt.Buffer {
	if in < 0 {
		buf.C('-')
		in = -in
	}
	digits := int(DigitCount(int64(in)))
	// Zero has no digits by DigitCount but is written as one
	if digits == 0 {
		digits = 1
	}
	for ; width > digits; width-- {
		buf.C('0')
	}
	return buf.D(in)
}

// DigitCount count digits in an int64 number
func DigitCount(number int64) int64 {
	var count int64 = 0
	for number != 0 {
		number /= 10
		count++
	}
	return count
}

// DaysBefore[m] counts the number of days in a non-leap year
// before month m begins. There is an entry for m=12, counting
// the number of days before January of next year (365).
var DaysBefore = [...]int32{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// IsLeap proleptic Gregorian leap year
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn number of days in month for year. Returns 0 for a month outside
// January to December.
func DaysIn(month time.Month, year int) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeap(year) {
		return 29
	}
	return int(DaysBefore[month] - DaysBefore[month-1])
}
