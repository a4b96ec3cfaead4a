// Package logging builds the slog loggers used by aibridge.
//
// Console output goes through [TextHandler], a compact colored format for
// terminals. Secrets found in attribute values are masked before they reach
// any writer. [Fanout] lets a run log to the console and a JSON file at the
// same time:
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Code that has a context but no logger calls [FromContext].
package logging
