package mcp

import (
	"testing"
)

func TestServer_IsLocal(t *testing.T) {
	tests := []struct {
		name   string
		server Server
		local  bool
		remote bool
	}{
		{"command only", Server{Command: "npx"}, true, false},
		{"url only", Server{URL: "https://x/mcp"}, false, true},
		{"explicit stdio", Server{Transport: TransportStdio}, true, false},
		{"explicit sse", Server{Transport: TransportSSE, Command: "ignored"}, false, true},
		{"explicit http", Server{Transport: TransportHTTP}, false, true},
		{"both without transport", Server{Command: "npx", URL: "https://x"}, true, false},
		{"empty", Server{}, false, false},
		{"unknown transport", Server{Transport: "ws", URL: "wss://x"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.IsLocal(); got != tt.local {
				t.Errorf("IsLocal() = %v, want %v", got, tt.local)
			}
			if got := tt.server.IsRemote(); got != tt.remote {
				t.Errorf("IsRemote() = %v, want %v", got, tt.remote)
			}
		})
	}
}

func TestServer_Clone(t *testing.T) {
	s := &Server{
		Name:  "gh",
		Args:  []string{"-y"},
		Env:   map[string]string{"A": "1"},
		Tools: []string{"search"},
		Extra: map[string]any{"timeout": 5},
	}
	c := s.Clone()
	c.Args[0] = "x"
	c.Env["A"] = "2"
	c.Tools[0] = "x"
	c.Extra["timeout"] = 9

	if s.Args[0] != "-y" || s.Env["A"] != "1" || s.Tools[0] != "search" || s.Extra["timeout"] != 5 {
		t.Errorf("Clone() shares state with original: %+v", s)
	}

	var nilServer *Server
	if nilServer.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestNames(t *testing.T) {
	got := Names(map[string]*Server{"b": {}, "a": {}, "c": {}})
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}
