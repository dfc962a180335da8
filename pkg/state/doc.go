// Package state keeps per-user state that outlives a single pathtitle
// invocation. Today that is the pending undo entry of the rule editor,
// tied to the settings file it was recorded against.
package state
