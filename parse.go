package isoutc

import (
	"strings"
	"time"

	"github.com/imarsman/isoutc/pkg/utility"
	logging "github.com/ipfs/go-log/v2"
	"lab.nexedi.com/kirr/go123/xfmt"
)

var log = logging.Logger("isoutc")

const (
	dateTimeDelimiter = 'T'
	defaultTime       = "00:00:00"
	sentinelDate      = "1000-01-01" // date used when only a time of day is given
	baseLayout        = "2006-01-02T15:04:05"
)

// Parse convert an ISO-8601 timestamp to UTC wall clock fields with
// microsecond precision.
//
// Accepted input is a date, a time of day, or both separated by T, followed
// by optional fractional seconds and an optional offset.
//
//	2022-02-20                    -> 2022-02-20T00:00:00.000000Z
//	15:35:30                      -> 1000-01-01T15:35:30.000000Z
//	2022-02-20T15:35:30.888+09:30 -> 2022-02-20T06:05:30.888000Z
//	2022-02-20T15:35:30-0930      -> 2022-02-21T01:05:30.000000Z
//
// Fractions of other than 3 or 6 digits are ignored.
func Parse(text string) (Timestamp, error) {
	result, err := inspect("Parse", text, Options{})
	return result.Timestamp, err
}

// ParseSeconds convert an ISO-8601 timestamp to UTC wall clock fields with
// whole second precision. Any fraction is dropped without being examined.
func ParseSeconds(text string) (Timestamp, error) {
	result, err := inspect("ParseSeconds", text, Options{Precision: Second})
	return result.Timestamp, err
}

// ParseTime same as Parse with the result as a UTC time.Time
func ParseTime(text string) (time.Time, error) {
	result, err := inspect("ParseTime", text, Options{})
	if err != nil {
		return time.Time{}, err
	}
	return result.Timestamp.Time(), nil
}

// ParseWithOptions convert with explicit precision and offset policy
func ParseWithOptions(text string, opts Options) (Timestamp, error) {
	result, err := inspect("ParseWithOptions", text, opts)
	return result.Timestamp, err
}

// Inspect convert and report the output of every stage
func Inspect(text string, opts Options) (Result, error) {
	return inspect("Inspect", text, opts)
}

// Normalize give text the DATE T TIME shape. Text with a T is returned as is.
// Text with no T and no colon is taken as a date and gets a midnight time.
// Anything else is taken as a time of day and gets the 1000-01-01 date.
func Normalize(text string) string {
	if strings.IndexByte(text, dateTimeDelimiter) >= 0 {
		return text
	}
	if strings.IndexByte(text, ':') < 0 {
		return text + string(dateTimeDelimiter) + defaultTime
	}
	return sentinelDate + string(dateTimeDelimiter) + text
}

// One pass, no backtracking:
//
//	normalize -> offset boundary -> offset value -> fraction -> base -> apply
func inspect(fn, text string, opts Options) (result Result, err error) {
	result.Input = text
	result.Normalized = Normalize(text)

	s := result.Normalized
	delim := strings.IndexByte(s, dateTimeDelimiter)

	boundary, offset := offsetBoundary(s, delim)
	if offset.Present == true && offset.Zulu == false {
		err = parseOffset(fn, text, s[boundary+1:], &offset, opts.Strict)
		if err != nil {
			return
		}
	}
	result.Offset = offset

	base := s[:boundary]
	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		if opts.Precision == Microsecond {
			result.Fraction, err = extractFraction(fn, text, base[dot:])
			if err != nil {
				return
			}
		}
		base = base[:dot]
	}
	result.Base = base

	t, err := parseBase(fn, text, base)
	if err != nil {
		return
	}

	// Each part is its own calendar aware addition so that minutes never
	// overflow into hours by field arithmetic.
	if offset.Sign != 0 {
		t = t.Add(time.Duration(offset.Sign*offset.Hours) * time.Hour)
		t = t.Add(time.Duration(offset.Sign*offset.Minutes) * time.Minute)
	}
	if opts.Precision == Microsecond {
		t = t.Add(time.Duration(result.Fraction.Microseconds) * time.Microsecond)
	}
	result.Timestamp = timestampFromTime(t)

	return
}

// offsetBoundary find where the offset starts. Only text after the date/time
// delimiter is searched since the date itself holds dashes. The checks run
// in a fixed order: the last +, then the last -, then Z. With none of them
// the boundary is the end of the text.
func offsetBoundary(s string, delim int) (boundary int, offset OffsetSpec) {
	start := delim + 1
	after := s[start:]

	if i := strings.LastIndexByte(after, '+'); i >= 0 {
		// Source is ahead of UTC so the offset is subtracted
		return start + i, OffsetSpec{Present: true, Sign: -1}
	}
	if i := strings.LastIndexByte(after, '-'); i >= 0 {
		return start + i, OffsetSpec{Present: true, Sign: 1}
	}
	if i := strings.IndexByte(after, 'Z'); i >= 0 {
		return start + i, OffsetSpec{Present: true, Zulu: true}
	}

	return len(s), OffsetSpec{}
}

// parseOffset read hours and minutes from the text after the offset sign.
//
//	HH:MM  hour and minute, each one or two digits
//	HHMM   exactly four digits
//	HH     one or two digits, minutes are zero
func parseOffset(fn, input, text string, offset *OffsetSpec, strict bool) (err error) {
	var hours, minutes int

	if colon := strings.IndexByte(text, ':'); colon >= 0 {
		hText, mText := text[:colon], text[colon+1:]
		if len(hText) > 2 || len(mText) > 2 {
			return newParseError(ErrMalformedOffset, fn, input, "offset", quoted(text))
		}
		hours, err = utility.AtoiN(hText)
		if err != nil {
			return newParseError(ErrMalformedOffset, fn, input, "offset hours", quoted(text))
		}
		minutes, err = utility.AtoiN(mText)
		if err != nil {
			return newParseError(ErrMalformedOffset, fn, input, "offset minutes", quoted(text))
		}
	} else if len(text) > 2 {
		if len(text) != 4 {
			return newParseError(ErrMalformedOffset, fn, input, "compact offset", quoted(text))
		}
		hours, err = utility.Atoi2(text[:2])
		if err != nil {
			return newParseError(ErrMalformedOffset, fn, input, "offset hours", quoted(text))
		}
		minutes, err = utility.Atoi2(text[2:])
		if err != nil {
			return newParseError(ErrMalformedOffset, fn, input, "offset minutes", quoted(text))
		}
	} else {
		hours, err = utility.AtoiN(text)
		if err != nil {
			return newParseError(ErrMalformedOffset, fn, input, "offset hours", quoted(text))
		}
	}

	if hours > 23 || minutes > 59 {
		if strict == true {
			return newParseError(ErrOffsetOutOfRange, fn, input, "offset", quoted(text))
		}
		log.Debugf("applying out of range offset %q in %q", text, input)
	}

	offset.Hours = hours
	offset.Minutes = minutes

	return nil
}

// extractFraction read the fraction starting at the decimal point. Only 3
// and 6 digit fractions are used. Other lengths give zero microseconds.
func extractFraction(fn, input, text string) (fraction FractionalSeconds, err error) {
	fraction.Digits = text[1:]

	var n int
	switch len(text) {
	case 4:
		// Milliseconds
		n, err = utility.AtoiN(fraction.Digits)
		fraction.Microseconds = n * 1000
	case 7:
		n, err = utility.AtoiN(fraction.Digits)
		fraction.Microseconds = n
	default:
		log.Debugf("ignoring %d digit fraction in %q", len(fraction.Digits), input)
		return
	}
	if err != nil {
		fraction.Microseconds = 0
		err = newParseError(ErrMalformedFraction, fn, input, "fraction", quoted(text))
	}

	return
}

// parseBase read a YYYY-MM-DDTHH:MM:SS date-time in UTC. Separators must be at
// fixed positions and every field must be within its calendar range.
func parseBase(fn, input, base string) (t time.Time, err error) {
	if len(base) != len(baseLayout) {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "layout", quoted(base))
	}
	if base[4] != '-' || base[7] != '-' || base[10] != dateTimeDelimiter || base[13] != ':' || base[16] != ':' {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "separators", quoted(base))
	}

	var y, m, d, h, mn, s int

	if y, err = utility.Atoi4(base[0:4]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "year", quoted(base[0:4]))
	}
	if m, err = utility.Atoi2(base[5:7]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "month", quoted(base[5:7]))
	}
	if d, err = utility.Atoi2(base[8:10]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "day", quoted(base[8:10]))
	}
	if h, err = utility.Atoi2(base[11:13]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "hour", quoted(base[11:13]))
	}
	if mn, err = utility.Atoi2(base[14:16]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "minute", quoted(base[14:16]))
	}
	if s, err = utility.Atoi2(base[17:19]); err != nil {
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "second", quoted(base[17:19]))
	}

	switch {
	case y < 1:
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "year", rangeDetail(y, 1, 9999))
	case m < 1 || m > 12:
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "month", rangeDetail(m, 1, 12))
	case d < 1 || d > utility.DaysIn(time.Month(m), y):
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "day",
			rangeDetail(d, 1, utility.DaysIn(time.Month(m), y)))
	case h > 23:
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "hour", rangeDetail(h, 0, 23))
	case mn > 59:
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "minute", rangeDetail(mn, 0, 59))
	case s > 59:
		return t, newParseError(ErrMalformedBaseDateTime, fn, input, "second", rangeDetail(s, 0, 59))
	}

	return time.Date(y, time.Month(m), d, h, mn, s, 0, time.UTC), nil
}

func quoted(s string) string {
	xfmtBuf := new(xfmt.Buffer)
	xfmtBuf.C('"').S(s).C('"')

	return utility.BytesToString(xfmtBuf.Bytes()...)
}

//	13 not in 1-12
func rangeDetail(given, min, max int) string {
	xfmtBuf := new(xfmt.Buffer)
	xfmtBuf.D(given).S(" not in ").D(min).C('-').D(max)

	return utility.BytesToString(xfmtBuf.Bytes()...)
}
