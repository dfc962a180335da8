// Package testutil builds vaults for tests.
//
// Two environment types are available:
//   - EnvMemoryOnly: the vault lives in an afero memory filesystem. Use it
//     for code that takes an afero.Fs (vault listing, undo state).
//   - EnvIsolated: the vault lives in a temp directory and the PATHTITLE_*
//     variables point config and state at temp directories too. Use it for
//     settings files and the command line, which read the real filesystem.
//
// All test data is defined inline; nothing is shared between tests.
package testutil
