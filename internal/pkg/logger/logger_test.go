package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComponentLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	l := Component("localstore")
	l.Info().Str("collection", "voc_events").Msg("seeded")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["component"] != "localstore" || line["collection"] != "voc_events" || line["message"] != "seeded" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
