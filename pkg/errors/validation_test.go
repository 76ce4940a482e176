package errors

import (
	"strings"
	"testing"
)

func TestValidateDepth(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		limit   int
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"positive unlimited", 40, 0, false},
		{"at limit", 12, 12, false},
		{"negative", -1, 0, true},
		{"over limit", 13, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepth(tt.depth, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDepth(%d, %d) error = %v, wantErr %v", tt.depth, tt.limit, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDepth) {
				t.Errorf("expected INVALID_DEPTH, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uppercase", "S", false},
		{"digit", "7", false},
		{"punctuation", "<", false},
		{"empty", "", true},
		{"two bytes", "AB", true},
		{"multibyte rune", "Σ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "grammars/binary.toml", false},
		{"absolute", "/etc/cfggen/binary.toml", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "binary.toml", false},
		{"nested", "grammars/expr.json", false},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.toml", true},
		{"backslash", "grammars\\expr.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
