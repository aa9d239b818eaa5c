package main

import (
	"testing"
	"time"
)

func TestParseMonitorOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    monitorOptions
		wantErr bool
	}{
		{name: "defaults", args: nil, want: monitorOptions{}},
		{name: "listen duration", args: []string{"--listen-for", "30s"}, want: monitorOptions{ListenFor: 30 * time.Second}},
		{name: "no notify", args: []string{"--no-notify"}, want: monitorOptions{NoNotify: true}},
		{name: "no preflight", args: []string{"--no-preflight"}, want: monitorOptions{NoPreflight: true}},
		{name: "unexpected positional", args: []string{"extra"}, wantErr: true},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseMonitorOptions(tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got nil", tc.name)
			}

			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}
