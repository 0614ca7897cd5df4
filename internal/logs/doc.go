// Package logs reads the daily log files written by internal/logging.
//
// Tail returns the last lines of a file and an offset; passing that offset
// back with Follow set waits for lines appended after it. A file that was
// truncated or replaced since the offset was taken is read again from the
// start.
package logs
