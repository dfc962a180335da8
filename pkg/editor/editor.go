// Package editor implements the settings-list editing affordances for a
// rule list: append, remove with a single undo slot, reorder and in-place
// edits. Every effective mutation is handed to a Committer before it
// becomes visible, so a failed save never leaves the editor half-updated.
package editor

import (
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

// Committer persists a rule list
type Committer interface {
	CommitRules(list []rules.Rule) error
}

// CommitFunc adapts a function to Committer
type CommitFunc func(list []rules.Rule) error

// CommitRules calls f(list)
func (f CommitFunc) CommitRules(list []rules.Rule) error {
	return f(list)
}

// UndoEntry is the most recently removed rule and where it stood
type UndoEntry struct {
	Index int        `toml:"index" json:"index"`
	Rule  rules.Rule `toml:"rule" json:"rule"`
}

// Editor owns a rule list and its undo slot
type Editor struct {
	list      []rules.Rule
	undo      *UndoEntry
	committer Committer
}

// New creates an editor over a copy of initial
func New(initial []rules.Rule, committer Committer) *Editor {
	return &Editor{
		list:      clone(initial),
		committer: committer,
	}
}

// Rules returns a copy of the current list
func (e *Editor) Rules() []rules.Rule {
	return clone(e.list)
}

// Len returns the number of rules
func (e *Editor) Len() int {
	return len(e.list)
}

// At returns rule i
func (e *Editor) At(i int) (rules.Rule, error) {
	if err := e.checkIndex(i); err != nil {
		return rules.Rule{}, err
	}
	return e.list[i], nil
}

// Append adds rule at the end of the list and clears the undo slot
func (e *Editor) Append(rule rules.Rule) error {
	next := append(clone(e.list), rule)
	if err := e.commit(next, nil); err != nil {
		return err
	}
	logger := logging.GetLogger("editor")
	logger.Debug().
		Str("kind", string(rule.Kind)).
		Str("match", rule.Match).
		Int("index", len(next)-1).
		Msg("Appended rule")
	return nil
}

// AddPath appends an exact rule that maps folderPath to itself.
// The vault root ("/" in folder listings) has no title, so it is rejected.
func (e *Editor) AddPath(folderPath string) error {
	if folderPath == "" || folderPath == "/" {
		return errors.Newf(errors.ErrInvalidInput, "%q is the vault root, which never gets a title", folderPath).
			WithDetail("path", folderPath)
	}
	return e.Append(rules.Rule{Kind: rules.KindExact, Match: folderPath, Replace: folderPath})
}

// AddFolder appends a folder rule that maps name to itself
func (e *Editor) AddFolder(name string) error {
	return e.Append(rules.Rule{Kind: rules.KindFolder, Match: name, Replace: name})
}

// RemoveAt deletes rule i and remembers it in the undo slot,
// replacing whatever was there before.
func (e *Editor) RemoveAt(i int) (rules.Rule, error) {
	if err := e.checkIndex(i); err != nil {
		return rules.Rule{}, err
	}

	removed := e.list[i]
	next := make([]rules.Rule, 0, len(e.list)-1)
	next = append(next, e.list[:i]...)
	next = append(next, e.list[i+1:]...)

	if err := e.commit(next, &UndoEntry{Index: i, Rule: removed}); err != nil {
		return rules.Rule{}, err
	}
	logger := logging.GetLogger("editor")
	logger.Debug().
		Int("index", i).
		Str("heading", rules.Heading(removed)).
		Msg("Removed rule")
	return removed, nil
}

// UndoLastRemoval puts the last removed rule back where it was.
// The index is clamped to the current list length. It reports false
// when there is nothing to undo.
func (e *Editor) UndoLastRemoval() (bool, error) {
	if e.undo == nil {
		return false, nil
	}

	at := e.undo.Index
	if at > len(e.list) {
		at = len(e.list)
	}
	if at < 0 {
		at = 0
	}

	next := make([]rules.Rule, 0, len(e.list)+1)
	next = append(next, e.list[:at]...)
	next = append(next, e.undo.Rule)
	next = append(next, e.list[at:]...)

	if err := e.commit(next, nil); err != nil {
		return false, err
	}
	logger := logging.GetLogger("editor")
	logger.Debug().Int("index", at).Msg("Restored removed rule")
	return true, nil
}

// DismissUndo forgets the undo slot without restoring it
func (e *Editor) DismissUndo() {
	e.undo = nil
}

// MoveUp swaps rule i with its predecessor. At the top it does nothing
// and reports false.
func (e *Editor) MoveUp(i int) (bool, error) {
	if err := e.checkIndex(i); err != nil {
		return false, err
	}
	if i == 0 {
		return false, nil
	}
	if err := e.swap(i, i-1); err != nil {
		return false, err
	}
	return true, nil
}

// MoveDown swaps rule i with its successor. At the bottom it does nothing
// and reports false.
func (e *Editor) MoveDown(i int) (bool, error) {
	if err := e.checkIndex(i); err != nil {
		return false, err
	}
	if i == len(e.list)-1 {
		return false, nil
	}
	if err := e.swap(i, i+1); err != nil {
		return false, err
	}
	return true, nil
}

// Update replaces rule i in place
func (e *Editor) Update(i int, rule rules.Rule) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	next := clone(e.list)
	next[i] = rule
	return e.commit(next, e.undo)
}

// Pending returns the undo slot, if any
func (e *Editor) Pending() (UndoEntry, bool) {
	if e.undo == nil {
		return UndoEntry{}, false
	}
	return *e.undo, true
}

// Restore fills the undo slot, typically from a previous process
func (e *Editor) Restore(entry UndoEntry) {
	e.undo = &entry
}

// Reset replaces the list without committing and clears the undo slot.
// It is used when the persisted settings changed underneath the editor.
func (e *Editor) Reset(list []rules.Rule) {
	e.list = clone(list)
	e.undo = nil
}

func (e *Editor) swap(i, j int) error {
	next := clone(e.list)
	next[i], next[j] = next[j], next[i]
	if err := e.commit(next, e.undo); err != nil {
		return err
	}
	logger := logging.GetLogger("editor")
	logger.Debug().Int("from", i).Int("to", j).Msg("Moved rule")
	return nil
}

// commit persists next and only then makes it and undo current
func (e *Editor) commit(next []rules.Rule, undo *UndoEntry) error {
	if e.committer != nil {
		if err := e.committer.CommitRules(clone(next)); err != nil {
			logger := logging.GetLogger("editor")
			logger.Error().Err(err).Msg("Commit failed, keeping previous rules")
			return err
		}
	}
	e.list = next
	e.undo = undo
	return nil
}

func (e *Editor) checkIndex(i int) error {
	if i < 0 || i >= len(e.list) {
		return errors.Newf(errors.ErrRuleIndex, "no rule at position %d (have %d)", i+1, len(e.list)).
			WithDetail("index", i).
			WithDetail("length", len(e.list))
	}
	return nil
}

func clone(list []rules.Rule) []rules.Rule {
	out := make([]rules.Rule, len(list))
	copy(out, list)
	return out
}
