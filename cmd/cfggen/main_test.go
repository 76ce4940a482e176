package main

import (
	"context"
	"fmt"
	"testing"

	cfgerrors "github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("generate: %w", context.Canceled), exitInterrupted},
		{"invalid depth", cfgerrors.New(cfgerrors.ErrCodeInvalidDepth, "depth must be non-negative"), exitInvalid},
		{"invalid format", fmt.Errorf("render: %w", cfgerrors.New(cfgerrors.ErrCodeInvalidFormat, "bad")), exitInvalid},
		{"failure", fmt.Errorf("open cache: boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
