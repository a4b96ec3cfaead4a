// Package config loads aibridge's own settings with Viper.
//
// These settings are distinct from the assistant configs that platform
// adapters read and write.
//
// # Configuration File
//
// config.yaml is searched for in the current directory and then in
// <XDG config>/aibridge:
//
//	version: 1
//	default_targets:
//	  - codex
//	  - cursor
//	backup:
//	  enabled: true
//	  retention: 5
//	platforms:
//	  windsurf:
//	    disabled: true
//
// Every key can be overridden from the environment with the AIBRIDGE_
// prefix, dots replaced by underscores: AIBRIDGE_BACKUP_RETENTION=10.
//
// # Validation
//
// [Load] validates the result: the version must be 1, platform names must
// be built in and the retention must not be negative.
package config
