package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != Default() {
		t.Fatalf("Load = %+v, want %+v", p, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	saved := Prefs{Theme: "Slate", View: ViewDeleted, PollSeconds: 30}
	if err := Save(prefsFile, saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != saved {
		t.Fatalf("round trip = %+v, want %+v", loaded, saved)
	}
}

func TestLoad_NormalizesFieldsIndependently(t *testing.T) {
	cases := []struct {
		name string
		toml string
		want Prefs
	}{
		{
			name: "empty theme keeps other fields",
			toml: "theme = \"\"\nview = \"deleted\"\npoll_seconds = 10\n",
			want: Prefs{Theme: defaultTheme, View: ViewDeleted, PollSeconds: 10},
		},
		{
			name: "unknown view resets to home",
			toml: "theme = \"Slate\"\nview = \"archived\"\n",
			want: Prefs{Theme: "Slate", View: ViewHome},
		},
		{
			name: "negative poll override dropped",
			toml: "theme = \"Slate\"\nview = \"home\"\npoll_seconds = -5\n",
			want: Prefs{Theme: "Slate", View: ViewHome},
		},
		{
			name: "absurd poll override dropped",
			toml: "poll_seconds = 86400\n",
			want: Prefs{Theme: defaultTheme, View: ViewHome},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tc.toml), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := Load(prefsFile)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Load = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != Default() {
		t.Fatalf("Load = %+v, want %+v", p, Default())
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "recdeck")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "theme = \"Kanagawa\"\nview = \"deleted\"\n"
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Kanagawa" || p.View != ViewDeleted {
		t.Fatalf("Load = %+v, want Kanagawa/deleted", p)
	}
}

func TestSave_NormalizesBeforeWriting(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")

	if err := Save(prefsFile, Prefs{View: "archived", PollSeconds: -1}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != Default() {
		t.Fatalf("Load = %+v, want %+v", loaded, Default())
	}
}
