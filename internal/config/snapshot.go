package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Alwanly/item-poller/pkg/validator"
	"github.com/tidwall/gjson"
	"go.yaml.in/yaml/v3"
)

// Snapshot is the poller configuration read from a file. A nil field means
// the key was absent.
type Snapshot struct {
	Flag     *bool
	Interval *time.Duration
	Attr3    any
}

// ConfigurationError is returned when the source cannot be read or parsed.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("load configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

var ErrMalformed = errors.New("malformed document")

// rawSnapshot is the decoded document before seconds become a duration.
type rawSnapshot struct {
	Flag    *bool    `yaml:"flag"`
	Seconds *float64 `yaml:"time" validate:"omitempty,gte=0"`
	Attr3   any      `yaml:"attr3"`
}

// Load reads the configuration file at path once. YAML files are decoded by
// extension; anything else is parsed as JSON.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	var raw rawSnapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &raw)
	default:
		err = decodeJSON(data, &raw)
	}
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	if err := validator.ValidateStruct(raw); err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("invalid time: %w", err)}
	}

	snap := &Snapshot{Flag: raw.Flag, Attr3: raw.Attr3}
	if raw.Seconds != nil {
		d := secondsToDuration(*raw.Seconds)
		snap.Interval = &d
	}
	return snap, nil
}

func decodeYAML(data []byte, raw *rawSnapshot) error {
	if err := yaml.Unmarshal(data, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func decodeJSON(data []byte, raw *rawSnapshot) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("%w: top level is %s, want object", ErrMalformed, doc.Type)
	}

	if v := doc.Get("flag"); v.Exists() && v.Type != gjson.Null {
		if !v.IsBool() {
			return fmt.Errorf("%w: flag must be a boolean, got %s", ErrMalformed, v.Raw)
		}
		b := v.Bool()
		raw.Flag = &b
	}
	if v := doc.Get("time"); v.Exists() && v.Type != gjson.Null {
		if v.Type != gjson.Number {
			return fmt.Errorf("%w: time must be a number, got %s", ErrMalformed, v.Raw)
		}
		f := v.Float()
		raw.Seconds = &f
	}
	if v := doc.Get("attr3"); v.Exists() {
		raw.Attr3 = v.Value()
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// FlagOr returns the flag, or def when it was absent.
func (s *Snapshot) FlagOr(def bool) bool {
	if s == nil || s.Flag == nil {
		return def
	}
	return *s.Flag
}

// IntervalOr returns the interval, or def when it was absent.
func (s *Snapshot) IntervalOr(def time.Duration) time.Duration {
	if s == nil || s.Interval == nil {
		return def
	}
	return *s.Interval
}
