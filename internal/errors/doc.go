// Package errors is the one error package the rest of aibridge imports.
//
// It forwards the cockroachdb/errors constructors, holds the sentinels that
// cross package boundaries, and maps failures to exit codes:
//
//	0  success
//	1  user error (unknown platform, bad flag, invalid config)
//	2  system error (I/O, permissions)
//
// Commands wrap failures with [NewUserError] or [NewSystemError] to pick the
// code and attach a suggestion; main prints the suggestions from [Hints].
package errors
