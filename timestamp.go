package isoutc

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/JohnCGriffin/overflow"
	"github.com/imarsman/isoutc/pkg/utility"
	"lab.nexedi.com/kirr/go123/xfmt"
)

// Precision of the sub-second part of a conversion
type Precision int

const (
	// Microsecond keep 3 or 6 digit fractions as microseconds
	Microsecond Precision = iota
	// Second drop anything after the decimal point
	Second
)

func (p Precision) String() string {
	if p == Second {
		return "second"
	}
	return "microsecond"
}

// Options control a conversion. The zero value converts with microsecond
// precision and accepts any two digit offset.
type Options struct {
	Precision Precision
	// Strict rejects offsets with hours above 23 or minutes above 59. Without
	// it such offsets are applied as is and calendar arithmetic absorbs them.
	Strict bool
}

// Timestamp a UTC wall clock value with microsecond resolution
type Timestamp struct {
	Year        int
	Month       time.Month
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

func timestampFromTime(t time.Time) Timestamp {
	t = t.In(time.UTC)
	return Timestamp{
		Year:        t.Year(),
		Month:       t.Month(),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Microsecond: t.Nanosecond() / int(time.Microsecond),
	}
}

// Time the timestamp as a time.Time in UTC
func (ts Timestamp) Time() time.Time {
	return time.Date(ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second,
		ts.Microsecond*int(time.Microsecond), time.UTC)
}

// Truncate drop microseconds, giving the second precision value
func (ts Timestamp) Truncate() Timestamp {
	ts.Microsecond = 0
	return ts
}

// UnixMicro microseconds since the Unix epoch. Returns ErrOutOfRange if the
// value does not fit in an int64.
func (ts Timestamp) UnixMicro() (int64, error) {
	micro, ok := overflow.Mul64(ts.Time().Unix(), int64(time.Second/time.Microsecond))
	if ok == false {
		return 0, newParseError(ErrOutOfRange, "Timestamp.UnixMicro", ts.String(), "unix microseconds", "")
	}
	micro, ok = overflow.Add64(micro, int64(ts.Microsecond))
	if ok == false {
		return 0, newParseError(ErrOutOfRange, "Timestamp.UnixMicro", ts.String(), "unix microseconds", "")
	}

	return micro, nil
}

// ISO8601 timestamp with no sub seconds
//
//	"2006-01-02T15:04:05Z"
func (ts Timestamp) ISO8601() string {
	return ts.format(false)
}

// ISO8601Micro timestamp with microseconds
//
//	"2006-01-02T15:04:05.000000Z"
func (ts Timestamp) ISO8601Micro() string {
	return ts.format(true)
}

func (ts Timestamp) String() string {
	return ts.ISO8601Micro()
}

func (ts Timestamp) format(micro bool) string {
	xfmtBuf := new(xfmt.Buffer)
	utility.PadD(xfmtBuf, ts.Year, 4).C('-')
	utility.PadD(xfmtBuf, int(ts.Month), 2).C('-')
	utility.PadD(xfmtBuf, ts.Day, 2).C('T')
	utility.PadD(xfmtBuf, ts.Hour, 2).C(':')
	utility.PadD(xfmtBuf, ts.Minute, 2).C(':')
	utility.PadD(xfmtBuf, ts.Second, 2)
	if micro == true {
		xfmtBuf.C('.')
		utility.PadD(xfmtBuf, ts.Microsecond, 6)
	}
	xfmtBuf.C('Z')

	return utility.BytesToString(xfmtBuf.Bytes()...)
}

// OffsetSpec the zone offset found in an input.
//
// Sign is the sign of the correction that takes the source wall clock to UTC,
// so it is the negation of the sign written in the input. An input of +09:30
// gives Sign -1, an input of -09:30 gives Sign 1. Z and a missing offset give
// Sign 0.
type OffsetSpec struct {
	Present bool
	Zulu    bool
	Sign    int
	Hours   int
	Minutes int
}

// Duration the signed correction added to the source wall clock to reach UTC
func (o OffsetSpec) Duration() time.Duration {
	sum, _ := overflow.Add64(
		int64(o.Sign*o.Hours)*int64(time.Hour),
		int64(o.Sign*o.Minutes)*int64(time.Minute))

	return time.Duration(sum)
}

// String offset in source notation
//
// For an input offset of 5 hours and 30 minutes
//
//	+05:30
//
// For an input of Z
//
//	Z
//
// With no offset the result is empty.
func (o OffsetSpec) String() string {
	if o.Present == false {
		return ""
	}
	if o.Zulu == true || o.Sign == 0 {
		return "Z"
	}

	xfmtBuf := new(xfmt.Buffer)
	// Sign holds the correction, the source wrote the opposite
	if o.Sign < 0 {
		xfmtBuf.C('+')
	} else {
		xfmtBuf.C('-')
	}
	utility.PadD(xfmtBuf, o.Hours, 2).C(':')
	utility.PadD(xfmtBuf, o.Minutes, 2)

	return utility.BytesToString(xfmtBuf.Bytes()...)
}

// Location a fixed zone matching the source offset
func (o OffsetSpec) Location() *time.Location {
	if o.Sign == 0 {
		return time.UTC
	}
	return LocationFromOffset(-o.Sign * (o.Hours*60*60 + o.Minutes*60))
}

// FractionalSeconds the sub-second text of an input and its value
type FractionalSeconds struct {
	Digits       string // digits after the decimal point
	Microseconds int
}

// Result every stage of a conversion
type Result struct {
	Input      string // text as passed in
	Normalized string // text after a default date or time was added
	Base       string // YYYY-MM-DDTHH:MM:SS text given to the base parser
	Offset     OffsetSpec
	Fraction   FractionalSeconds
	Timestamp  Timestamp
}

// SourceTime the converted instant expressed in the zone of the input
func (r Result) SourceTime() time.Time {
	return r.Timestamp.Time().In(r.Offset.Location())
}

var locationAtomic atomic.Value
var locationMu sync.Mutex

func init() {
	// A cache for zones tied to offsets to save quite a bit of time and 3
	// allocations needed to get a fixed zone.
	locationAtomic.Store(make(map[int]*time.Location))
}

// LocationFromOffset get a location based on the offset seconds from UTC. Uses a cache
// of locations based on offset.
//
// Readers never lock. Writers copy the map so a stored map is never mutated.
func LocationFromOffset(offsetSec int) (location *time.Location) {
	cachedZones := locationAtomic.Load().(map[int]*time.Location)
	if l, ok := cachedZones[offsetSec]; ok {
		return l
	}

	location = time.FixedZone("FixedZone", offsetSec)

	locationMu.Lock()
	defer locationMu.Unlock()

	cachedZones = locationAtomic.Load().(map[int]*time.Location)
	// There are currently 37 observed UTC offsets in the world
	// (38 when Iran is on standard time). Allow up to 50.
	next := make(map[int]*time.Location, len(cachedZones)+1)
	if len(cachedZones) < 50 {
		for k, v := range cachedZones {
			next[k] = v
		}
	}
	next[offsetSec] = location
	locationAtomic.Store(next)

	return
}
