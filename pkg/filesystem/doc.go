// Package filesystem holds the small file helpers shared by the settings
// store and the undo state. Everything goes through an afero.Fs so tests
// can run against memory.
package filesystem
