package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2021-03-04", want: New(2021, time.March, 4)},
		{input: "2021-3-4", want: New(2021, time.March, 4)},
		{input: "2021/03/04", wantErr: true},
		{input: "3/4/2021", wantErr: true},
		{input: "04-Mar-21", wantErr: true},
		{input: "", wantErr: true},
		{input: "nan", wantErr: true},
		{input: "2021-13-01", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParsePrefix(t *testing.T) {
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2021-03-04 00:00:00", want: New(2021, time.March, 4)},
		{input: " 2021-03-04T10:00:00Z", want: New(2021, time.March, 4)},
		{input: "2021-3-4 12:00", want: New(2021, time.March, 4)},
		{input: "15/01/2020", wantErr: true},
		{input: "2021-03-04", want: New(2021, time.March, 4)},
		{input: "not a date at all", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePrefix(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePrefix(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParsePrefix(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	d := New(2020, time.January, 15)
	if got := d.String(); got != "2020-01-15" {
		t.Errorf("String() = %q, want %q", got, "2020-01-15")
	}
	if got := d.Format(USFormat); got != "01/15/2020" {
		t.Errorf("Format(USFormat) = %q, want %q", got, "01/15/2020")
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2020, time.January, 15), New(2020, time.February, 1)
	if !a.Before(b) || b.Before(a) || a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("inconsistent ordering between %v and %v", a, b)
	}
}
