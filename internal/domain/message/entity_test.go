package message

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeContent(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{name: "trims", in: "  hi there \n", want: "hi there"},
		{name: "blank", in: " \t ", err: ErrEmptyContent},
		{name: "at limit", in: strings.Repeat("é", MaxContentLength), want: strings.Repeat("é", MaxContentLength)},
		{name: "over limit", in: strings.Repeat("a", MaxContentLength+1), err: ErrContentTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeContent(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected err %v, got %v", tc.err, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
