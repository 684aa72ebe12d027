package tasks

import (
	"reflect"
	"testing"
)

func TestCleanFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"index.md", "index.md"},
		{"01__intro.md", "01_intro.md"},
		{"02_setup_.md", "02_setup.md"},
		{"03_a___b__.md", "03_a_b.md"},
		{"notes_", "notes"},
		{"x___", "x"},
	}

	for _, tt := range tests {
		if got := CleanFilename(tt.in); got != tt.want {
			t.Errorf("CleanFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := []File{
		{Name: "02_usage.md"},
		{Name: "01__intro_.md"},
		{Name: "index.md"},
		{Name: "10_appendix.md"},
	}
	got := Normalize(in)

	var names []string
	for _, f := range got {
		names = append(names, f.Name)
	}
	want := []string{"index.md", "01_intro.md", "02_usage.md", "10_appendix.md"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Normalize() names = %v, want %v", names, want)
	}
	if in[1].Name != "01__intro_.md" {
		t.Error("Normalize() modified its input")
	}
}

func TestFile_DisplayName(t *testing.T) {
	t.Parallel()

	if got := (File{Name: "01_getting_started.md"}).DisplayName(); got != "01 getting started" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (File{Name: "a.md", Title: "Custom"}).DisplayName(); got != "Custom" {
		t.Errorf("DisplayName() with title = %q", got)
	}
}
