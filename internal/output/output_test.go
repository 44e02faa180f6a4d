package output

import (
	"strings"
	"testing"
)

type sample struct {
	OK     bool   `yaml:"ok"             json:"ok"`
	Action string `yaml:"action"         json:"action"`
	Code   string `yaml:"code,omitempty" json:"code,omitempty"`
}

func TestMarshalYAML(t *testing.T) {
	orig := OutputFormat
	defer func() { OutputFormat = orig }()
	OutputFormat = FormatYAML

	got, err := Marshal(sample{OK: true, Action: "transaction", Code: "VA01"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(got, "ok: true") || !strings.Contains(got, "code: VA01") {
		t.Errorf("unexpected yaml: %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	orig := OutputFormat
	defer func() { OutputFormat = orig }()
	OutputFormat = FormatJSON

	got, err := Marshal(sample{OK: true, Action: "find"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"ok":true,"action":"find"}`
	if got != want {
		t.Errorf("json = %q, want %q", got, want)
	}
}

func TestMarshalOmitsEmpty(t *testing.T) {
	orig := OutputFormat
	defer func() { OutputFormat = orig }()
	OutputFormat = FormatYAML

	got, err := Marshal(sample{OK: false, Action: "wait"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(got, "code:") {
		t.Errorf("empty field not omitted: %q", got)
	}
}
