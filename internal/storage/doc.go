// Package storage reads and writes documents as plain text files.
//
// Files are read whole and split on '\n'. A trailing '\r' on a line is
// dropped and a final newline does not produce an extra empty line.
// Writes go to a temporary file in the same directory that is renamed
// over the target, so a failed save never truncates the original.
package storage
