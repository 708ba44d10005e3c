package isoutc

import (
	"errors"

	"github.com/imarsman/isoutc/pkg/utility"
	"lab.nexedi.com/kirr/go123/xfmt"
)

// Sentinel errors. Every error returned by the parse functions is a
// *ParseError that unwraps to one of these.
var (
	// ErrMalformedBaseDateTime the date and time text does not match
	// YYYY-MM-DDTHH:MM:SS or holds a field outside its calendar range
	ErrMalformedBaseDateTime = errors.New("malformed base date-time")
	// ErrMalformedOffset the text after an offset sign is not HH, HHMM or HH:MM
	ErrMalformedOffset = errors.New("malformed offset")
	// ErrMalformedFraction a 3 or 6 character fraction holds non-digits
	ErrMalformedFraction = errors.New("malformed fractional seconds")
	// ErrOffsetOutOfRange offset hours above 23 or minutes above 59 in strict mode
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrOutOfRange a value does not fit in an int64
	ErrOutOfRange = errors.New("value out of range")
)

// ParseError describes why an input could not be converted
type ParseError struct {
	Err     error  // one of the sentinel errors
	Func    string // exported function reporting the error
	Input   string // text as passed by the caller
	Element string // year, month, offset, fraction ...
	Detail  string
}

// Error message built without fmt to avoid allocations
//
//	isoutc.Parse: malformed base date-time: month 13 not in 1-12 in "2022-13-01"
func (e *ParseError) Error() string {
	xfmtBuf := new(xfmt.Buffer)
	xfmtBuf.S("isoutc.").S(e.Func).S(": ").S(e.Err.Error())
	if e.Element != "" {
		xfmtBuf.S(": ").S(e.Element)
	}
	if e.Detail != "" {
		xfmtBuf.C(' ').S(e.Detail)
	}
	xfmtBuf.S(" in ").C('"').S(e.Input).C('"')

	return utility.BytesToString(xfmtBuf.Bytes()...)
}

// Unwrap allow errors.Is against the sentinel errors
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error, fn, input, element, detail string) *ParseError {
	return &ParseError{
		Err:     err,
		Func:    fn,
		Input:   input,
		Element: element,
		Detail:  detail,
	}
}
