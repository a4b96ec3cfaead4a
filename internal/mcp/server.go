package mcp

import (
	"maps"
	"slices"
)

// Transport type constants for MCP server communication.
const (
	// TransportStdio indicates local process communication via stdin/stdout.
	// This is the default transport when a Command is specified.
	TransportStdio = "stdio"

	// TransportSSE indicates remote server communication via Server-Sent Events.
	TransportSSE = "sse"

	// TransportHTTP indicates remote server communication via streamable HTTP.
	TransportHTTP = "http"
)

// Server is one MCP server definition.
type Server struct {
	// Name is the key the server is stored under.
	Name string `json:"name" yaml:"name"`

	// Command is the executable for local servers.
	Command string `json:"command,omitempty" yaml:"command,omitempty"`

	// Args are passed to Command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// URL is the endpoint of remote servers.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Transport is "stdio", "sse" or "http". Empty means inferred from
	// Command and URL.
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`

	// Env is passed to the server process.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// Headers are sent to remote servers.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Tools restricts which tools the assistant may call. Empty means all.
	Tools []string `json:"tools,omitempty" yaml:"tools,omitempty"`

	// Disabled servers are kept in config but not started.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Extra holds keys of the source shape that have no field here.
	Extra map[string]any `json:"-" yaml:"-"`
}

// IsLocal returns true if this server uses local (stdio) transport.
// A server is considered local if it has a Command or explicit stdio transport.
func (s *Server) IsLocal() bool {
	if s.Transport == TransportStdio {
		return true
	}
	return s.Transport == "" && s.Command != ""
}

// IsRemote returns true if this server uses a remote transport.
// A server is considered remote if it has a URL and no Command, or an
// explicit remote transport.
func (s *Server) IsRemote() bool {
	switch s.Transport {
	case TransportSSE, TransportHTTP:
		return true
	case "":
		return s.URL != "" && s.Command == ""
	default:
		return false
	}
}

// Clone returns a deep copy of s.
func (s *Server) Clone() *Server {
	if s == nil {
		return nil
	}
	c := *s
	c.Args = slices.Clone(s.Args)
	c.Env = maps.Clone(s.Env)
	c.Headers = maps.Clone(s.Headers)
	c.Tools = slices.Clone(s.Tools)
	c.Extra = maps.Clone(s.Extra)
	return &c
}

// Names returns the server names in sorted order.
func Names(servers map[string]*Server) []string {
	return slices.Sorted(maps.Keys(servers))
}
