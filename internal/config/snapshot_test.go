package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_JSONAllFields(t *testing.T) {
	path := writeFile(t, "config.json", `{"flag": true, "time": 5, "attr3": {"name": "x", "n": [1, 2]}}`)

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Flag == nil || !*snap.Flag {
		t.Fatalf("expected flag true, got %v", snap.Flag)
	}
	if snap.Interval == nil || *snap.Interval != 5*time.Second {
		t.Fatalf("expected 5s interval, got %v", snap.Interval)
	}
	want := map[string]interface{}{"name": "x", "n": []interface{}{float64(1), float64(2)}}
	if !reflect.DeepEqual(snap.Attr3, want) {
		t.Fatalf("unexpected attr3 %#v", snap.Attr3)
	}
}

func TestLoad_JSONMissingFieldsAreAbsent(t *testing.T) {
	path := writeFile(t, "config.json", `{"other": 1}`)

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Flag != nil || snap.Interval != nil || snap.Attr3 != nil {
		t.Fatalf("expected all fields absent, got %+v", snap)
	}
	if snap.FlagOr(true) != true {
		t.Fatal("FlagOr should return default when absent")
	}
	if snap.IntervalOr(7*time.Second) != 7*time.Second {
		t.Fatal("IntervalOr should return default when absent")
	}
}

func TestLoad_JSONNullIsAbsent(t *testing.T) {
	path := writeFile(t, "config.json", `{"flag": null, "time": null}`)

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Flag != nil || snap.Interval != nil {
		t.Fatalf("expected null fields absent, got %+v", snap)
	}
}

func TestLoad_FractionalAndZeroSeconds(t *testing.T) {
	tests := []struct {
		body string
		want time.Duration
	}{
		{`{"time": 0.5}`, 500 * time.Millisecond},
		{`{"time": 0}`, 0},
		{`{"time": 120}`, 2 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			snap, err := Load(writeFile(t, "config.json", tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := snap.IntervalOr(-1); got != tt.want {
				t.Fatalf("interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{name: "malformed json", file: "config.json", body: `{"flag": true,`},
		{name: "empty json", file: "config.json", body: ``},
		{name: "array document", file: "config.json", body: `[1, 2]`},
		{name: "flag wrong type", file: "config.json", body: `{"flag": "yes"}`},
		{name: "time wrong type", file: "config.json", body: `{"time": "5"}`},
		{name: "negative time", file: "config.json", body: `{"time": -1}`},
		{name: "malformed yaml", file: "config.yaml", body: "flag: [true"},
		{name: "negative yaml time", file: "config.yml", body: "time: -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.body)
			_, err := Load(path)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Path != path {
				t.Fatalf("expected path %s, got %s", path, cfgErr.Path)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoad_MalformedIsMarked(t *testing.T) {
	_, err := Load(writeFile(t, "config.json", `not json`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "flag: false\ntime: 2\nattr3: hello\n")

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.FlagOr(true) != false {
		t.Fatal("expected flag false")
	}
	if snap.IntervalOr(0) != 2*time.Second {
		t.Fatalf("expected 2s, got %v", snap.IntervalOr(0))
	}
	if snap.Attr3 != "hello" {
		t.Fatalf("unexpected attr3 %#v", snap.Attr3)
	}
}

func TestSnapshotNilAccessors(t *testing.T) {
	var s *Snapshot
	if s.FlagOr(true) != true || s.IntervalOr(time.Second) != time.Second {
		t.Fatal("nil snapshot should return defaults")
	}
}
