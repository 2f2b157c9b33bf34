package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	defer func() { Version = prev }()

	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
	if Get().Version != "v1.2.3" {
		t.Errorf("Get().Version = %q", Get().Version)
	}
}
