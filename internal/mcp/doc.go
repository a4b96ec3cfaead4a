// Package mcp provides the platform-neutral MCP (Model Context Protocol)
// server model used when converting settings between assistants.
//
// Each assistant stores MCP servers in its own shape. Claude Code and
// OpenCode use an "mcpServers" object whose entries carry command, args and
// env; Codex uses an "mcp_servers" TOML table with an enabled flag and a
// tool allow-list. [FromClaude], [FromCodex], [ToClaude] and [ToCodex]
// translate between those shapes and [Server].
//
// # Transport Types
//
//   - [TransportStdio]: local process over stdin/stdout (default with a Command)
//   - [TransportSSE]: remote server over Server-Sent Events
//   - [TransportHTTP]: remote server over streamable HTTP
//
// # Forward Compatibility
//
// Keys a translator does not understand are kept in [Server.Extra] and
// written back when converting to the same shape, so a round trip through
// one platform does not drop settings.
package mcp
