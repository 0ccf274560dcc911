// Package utils provides shared helpers for the dreamlog CLI.
//
// # File Utilities
//
//   - ResolveImportFiles: expands paths, directories and ** globs into files
//   - IsJSONFile: reports whether a path is a .json export
//
// # String Utilities
//
//   - ParseList, ParseHashtags: parse comma-separated flag values
//   - FormatPaths, Truncate: format values for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//   - Confirm: asks a yes/no question
//
// # Terminal Utilities
//
//   - ReadPassphrase, ReadPassphraseFromTTY: hidden passphrase entry
//   - IsTerminal, IsTTYAvailable: terminal detection
package utils
