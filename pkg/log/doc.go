// Package log is a small wrapper around the standard library logger that
// gives every component of apodview its own named logger.
//
// Every line carries a level and a `[name>]` marker:
//
//	2025/01/02 10:00:00.000000 INFO [loader>] fetched 42 records
//
// Usage
//
//	l := log.For("loader")
//	l.Infof("fetched %d records", n)
//	l.Debugf("payload: %s", body) // only with debug enabled
//
// Debug output can be enabled for everything (SetGlobalDebug) or for a
// single component (EnableDebugFor). Output goes to stderr by default;
// SetOutput swaps the writer for all loggers at once, which tests use to
// capture lines in a bytes.Buffer. SetupFile sends output to a size-rotated
// file managed by lumberjack.
//
// The package name collides with the standard library "log"; alias one of
// them when both are needed.
package log
