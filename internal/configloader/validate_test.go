package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/grammar"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	reg := grammar.NewDefaultRegistry()

	valid := &config.Config{Grammar: "rs", Format: config.FormatSummary, Color: config.ColorAlways, Exclude: []string{"**/gen/**"}}
	if result := Validate(valid, reg); !result.Valid() || result.HasWarnings() {
		t.Errorf("expected valid config, got %v", result.AllMessages())
	}

	invalid := &config.Config{
		Grammar:     "cobol",
		Format:      "xml",
		Color:       "loud",
		Jobs:        -2,
		MaxFileSize: -1,
		Exclude:     []string{"ok/**", "[unclosed"},
	}
	result := Validate(invalid, reg)
	if len(result.Errors) != 6 {
		t.Fatalf("expected 6 errors, got %v", result.AllMessages())
	}

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	if got := strings.Join(fields, ","); got != "format,color,jobs,max_file_size,grammar,exclude[1]" {
		t.Errorf("unexpected error fields %s", got)
	}
}

func TestValidate_NilInputs(t *testing.T) {
	t.Parallel()

	if !Validate(nil, nil).Valid() {
		t.Error("nil config should validate")
	}
	if !Validate(&config.Config{Grammar: "anything"}, nil).Valid() {
		t.Error("grammar names are not checked without a registry")
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -1, Extensions: []string{"rlib"}}, nil, ".synlex.yml")
	msgs := result.AllMessages()
	if len(msgs) != 2 {
		t.Fatalf("expected one error and one warning, got %v", msgs)
	}
	if msgs[0] != "error: .synlex.yml: jobs: jobs must be >= 0 (0 means auto)" {
		t.Errorf("unexpected error message %q", msgs[0])
	}
	if !strings.HasPrefix(msgs[1], "warning: .synlex.yml: extensions[0]") {
		t.Errorf("unexpected warning message %q", msgs[1])
	}
}

func TestIsValidFormat(t *testing.T) {
	t.Parallel()

	if !IsValidFormat(config.FormatTable) || IsValidFormat("sarif") {
		t.Error("IsValidFormat() mismatch")
	}
}
