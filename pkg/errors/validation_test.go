package errors

import (
	"strings"
	"testing"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"Valid", "int x = 1;", false},
		{"Empty", "", false},
		{"WhitespaceOnly", "   \n\t  ", false},
		{"NullByte", "int x;\x00", true},
		{"TooLarge", strings.Repeat("x", MaxSourceBytes+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.source)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSource) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidSource)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "png", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("ValidateFormat(pdf) = nil, want error")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/api", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"example.com", true},
	}

	for _, tt := range tests {
		if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestValidateGraphID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"0c7ad3a4-52f1-4a6e-9d5e-ec7dd9f2a111", false},
		{"abc123", false},
		{"", true},
		{"../escape", true},
		{"id with spaces", true},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		if err := ValidateGraphID(tt.id); (err != nil) != tt.wantErr {
			t.Errorf("ValidateGraphID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
