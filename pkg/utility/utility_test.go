package utility_test

import (
	"testing"
	"time"

	"github.com/imarsman/isoutc/pkg/utility"
	"github.com/matryer/is"
	"lab.nexedi.com/kirr/go123/xfmt"
)

func TestAtoi(t *testing.T) {
	is := is.New(t)

	n, err := utility.Atoi2("09")
	is.NoErr(err)
	is.Equal(n, 9)

	n, err = utility.Atoi4("2022")
	is.NoErr(err)
	is.Equal(n, 2022)

	n, err = utility.AtoiN("888777")
	is.NoErr(err)
	is.Equal(n, 888777)

	bad := []string{"", "0a", "+1", " 1", "1234567890"}
	for _, in := range bad {
		_, err = utility.AtoiN(in)
		is.True(err != nil) // Should not parse
	}

	_, err = utility.Atoi2("123")
	is.True(err != nil) // Wrong length
	_, err = utility.Atoi4("20x2")
	is.True(err != nil) // Not a digit
}

func TestPadD(t *testing.T) {
	is := is.New(t)

	var cases = []struct {
		in    int
		width int
		want  string
	}{
		{0, 2, "00"},
		{5, 2, "05"},
		{12, 2, "12"},
		{888, 6, "000888"},
		{1000, 4, "1000"},
		{12345, 4, "12345"},
		{0, 6, "000000"},
	}

	for _, c := range cases {
		buf := new(xfmt.Buffer)
		utility.PadD(buf, c.in, c.width)
		is.Equal(utility.BytesToString(buf.Bytes()...), c.want) // Padded output
	}
}

func TestDaysIn(t *testing.T) {
	is := is.New(t)

	is.Equal(utility.DaysIn(time.February, 2022), 28)
	is.Equal(utility.DaysIn(time.February, 2024), 29)
	is.Equal(utility.DaysIn(time.February, 1900), 28) // Century not divisible by 400
	is.Equal(utility.DaysIn(time.February, 2000), 29)
	is.Equal(utility.DaysIn(time.April, 2022), 30)
	is.Equal(utility.DaysIn(time.December, 2022), 31)
	is.Equal(utility.DaysIn(time.Month(13), 2022), 0)
}
