package main

import (
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/takitaro/pkg/errors"
)

func TestFormatError(t *testing.T) {
	geometry := errs.Wrap(errs.ErrCodeGeometry, errors.New("bad path: number should follow command 'L'"), `measure path "cloud"`)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
		{
			name: "coded error",
			err:  errs.New(errs.ErrCodeInvalidOption, "unknown timing function"),
			want: "Error: INVALID_OPTION: unknown timing function",
		},
		{
			name: "wrapped causes",
			err:  fmt.Errorf("export sky: %w", geometry),
			want: "Error: export sky\n" +
				`  caused by: GEOMETRY_FAILURE: measure path "cloud"` + "\n" +
				"  caused by: bad path: number should follow command 'L'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatError(tt.err); got != tt.want {
				t.Errorf("formatError() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
