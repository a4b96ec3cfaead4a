// Package paths provides path resolution helpers shared by the platform
// adapters and the CLI.
//
// Platform adapters describe their files as slash-separated paths relative
// to a project root (".claude/settings.json") or to the user's home
// directory ("~/.codex/config.toml"). [ProjectPath] and [ExpandHome] turn
// those into OS paths.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for the tool's own directories:
//
//	paths.AppConfigDir() // <ConfigHome>/aibridge
//	paths.BackupDir()    // <DataHome>/aibridge/backups
package paths
