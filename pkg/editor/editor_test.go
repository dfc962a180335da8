// Test Type: Unit Test
// Description: Tests for the editor package - rule list mutations, undo slot and commit rollback

package editor_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/pathtitle/pkg/editor"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommitter implements editor.Committer for testing
type MockCommitter struct {
	mock.Mock
}

func (m *MockCommitter) CommitRules(list []rules.Rule) error {
	args := m.Called(list)
	return args.Error(0)
}

var (
	ruleA = rules.Rule{Kind: rules.KindExact, Match: "a", Replace: "A"}
	ruleB = rules.Rule{Kind: rules.KindFolder, Match: "b", Replace: "B"}
	ruleC = rules.Rule{Kind: rules.KindText, Match: "c", Replace: "C"}
)

func newEditor(t *testing.T, initial ...rules.Rule) (*editor.Editor, *MockCommitter) {
	t.Helper()
	c := &MockCommitter{}
	return editor.New(initial, c), c
}

func TestEditor_Append(t *testing.T) {
	t.Run("appends_and_commits", func(t *testing.T) {
		e, c := newEditor(t, ruleA)
		c.On("CommitRules", []rules.Rule{ruleA, ruleB}).Return(nil).Once()

		require.NoError(t, e.Append(ruleB))
		assert.Equal(t, []rules.Rule{ruleA, ruleB}, e.Rules())
		c.AssertExpectations(t)
	})

	t.Run("add_path_and_folder", func(t *testing.T) {
		e, c := newEditor(t)
		c.On("CommitRules", mock.Anything).Return(nil)

		require.NoError(t, e.AddPath("journal/2024"))
		require.NoError(t, e.AddFolder("inbox"))

		assert.Equal(t, []rules.Rule{
			{Kind: rules.KindExact, Match: "journal/2024", Replace: "journal/2024"},
			{Kind: rules.KindFolder, Match: "inbox", Replace: "inbox"},
		}, e.Rules())
		c.AssertNumberOfCalls(t, "CommitRules", 2)
	})

	t.Run("add_path_rejects_vault_root", func(t *testing.T) {
		e, c := newEditor(t, ruleA)

		for _, root := range []string{"/", ""} {
			err := e.AddPath(root)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		}
		assert.Equal(t, []rules.Rule{ruleA}, e.Rules())
		c.AssertNotCalled(t, "CommitRules", mock.Anything)
	})

	t.Run("clears_undo_slot", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)
		c.On("CommitRules", mock.Anything).Return(nil)

		_, err := e.RemoveAt(0)
		require.NoError(t, err)
		_, pending := e.Pending()
		require.True(t, pending)

		require.NoError(t, e.Append(ruleC))
		_, pending = e.Pending()
		assert.False(t, pending)

		undone, err := e.UndoLastRemoval()
		require.NoError(t, err)
		assert.False(t, undone)
		assert.Equal(t, []rules.Rule{ruleB, ruleC}, e.Rules())
	})
}

func TestEditor_RemoveAndUndo(t *testing.T) {
	t.Run("undo_restores_original_position", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			e, c := newEditor(t, ruleA, ruleB, ruleC)
			c.On("CommitRules", mock.Anything).Return(nil)

			removed, err := e.RemoveAt(i)
			require.NoError(t, err)
			assert.Equal(t, []rules.Rule{ruleA, ruleB, ruleC}[i], removed)
			assert.Equal(t, 2, e.Len())

			undone, err := e.UndoLastRemoval()
			require.NoError(t, err)
			assert.True(t, undone)
			assert.Equal(t, []rules.Rule{ruleA, ruleB, ruleC}, e.Rules())

			_, pending := e.Pending()
			assert.False(t, pending, "slot cleared after undo")
		}
	})

	t.Run("only_last_removal_is_undoable", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB, ruleC)
		c.On("CommitRules", mock.Anything).Return(nil)

		_, _ = e.RemoveAt(0)
		_, _ = e.RemoveAt(0)

		entry, ok := e.Pending()
		require.True(t, ok)
		assert.Equal(t, editor.UndoEntry{Index: 0, Rule: ruleB}, entry)

		_, _ = e.UndoLastRemoval()
		assert.Equal(t, []rules.Rule{ruleB, ruleC}, e.Rules())
	})

	t.Run("undo_index_clamped", func(t *testing.T) {
		e, c := newEditor(t, ruleA)
		c.On("CommitRules", mock.Anything).Return(nil)

		e.Restore(editor.UndoEntry{Index: 7, Rule: ruleC})
		undone, err := e.UndoLastRemoval()
		require.NoError(t, err)
		assert.True(t, undone)
		assert.Equal(t, []rules.Rule{ruleA, ruleC}, e.Rules())
	})

	t.Run("undo_with_empty_slot_is_noop", func(t *testing.T) {
		e, c := newEditor(t, ruleA)

		undone, err := e.UndoLastRemoval()
		require.NoError(t, err)
		assert.False(t, undone)
		c.AssertNotCalled(t, "CommitRules", mock.Anything)
	})

	t.Run("dismiss_clears_without_restoring", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)
		c.On("CommitRules", mock.Anything).Return(nil)

		_, _ = e.RemoveAt(1)
		e.DismissUndo()

		undone, err := e.UndoLastRemoval()
		require.NoError(t, err)
		assert.False(t, undone)
		assert.Equal(t, []rules.Rule{ruleA}, e.Rules())
		c.AssertNumberOfCalls(t, "CommitRules", 1)
	})

	t.Run("out_of_range", func(t *testing.T) {
		e, c := newEditor(t, ruleA)

		for _, i := range []int{-1, 1, 5} {
			_, err := e.RemoveAt(i)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrRuleIndex))
		}
		c.AssertNotCalled(t, "CommitRules", mock.Anything)
	})
}

func TestEditor_Move(t *testing.T) {
	t.Run("move_up", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB, ruleC)
		c.On("CommitRules", []rules.Rule{ruleA, ruleC, ruleB}).Return(nil).Once()

		moved, err := e.MoveUp(2)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, []rules.Rule{ruleA, ruleC, ruleB}, e.Rules())
		c.AssertExpectations(t)
	})

	t.Run("move_down", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB, ruleC)
		c.On("CommitRules", []rules.Rule{ruleB, ruleA, ruleC}).Return(nil).Once()

		moved, err := e.MoveDown(0)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, []rules.Rule{ruleB, ruleA, ruleC}, e.Rules())
		c.AssertExpectations(t)
	})

	t.Run("boundaries_are_noops", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)

		moved, err := e.MoveUp(0)
		require.NoError(t, err)
		assert.False(t, moved)

		moved, err = e.MoveDown(1)
		require.NoError(t, err)
		assert.False(t, moved)

		assert.Equal(t, []rules.Rule{ruleA, ruleB}, e.Rules())
		c.AssertNotCalled(t, "CommitRules", mock.Anything)
	})

	t.Run("moves_keep_undo_slot", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB, ruleC)
		c.On("CommitRules", mock.Anything).Return(nil)

		_, _ = e.RemoveAt(2)
		_, _ = e.MoveDown(0)

		entry, ok := e.Pending()
		require.True(t, ok)
		assert.Equal(t, ruleC, entry.Rule)
	})

	t.Run("out_of_range", func(t *testing.T) {
		e, _ := newEditor(t, ruleA)

		_, err := e.MoveUp(3)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleIndex))
		_, err = e.MoveDown(-1)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleIndex))
	})
}

func TestEditor_Update(t *testing.T) {
	e, c := newEditor(t, ruleA, ruleB)
	updated := rules.Rule{Kind: rules.KindRegexp, Match: "^b$", Replace: "bee"}
	c.On("CommitRules", []rules.Rule{ruleA, updated}).Return(nil).Once()

	require.NoError(t, e.Update(1, updated))
	got, err := e.At(1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	err = e.Update(2, updated)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleIndex))
	c.AssertExpectations(t)
}

func TestEditor_CommitFailureRollsBack(t *testing.T) {
	saveErr := stderrors.New("disk full")

	t.Run("remove", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)
		c.On("CommitRules", mock.Anything).Return(saveErr)

		_, err := e.RemoveAt(0)
		assert.ErrorIs(t, err, saveErr)
		assert.Equal(t, []rules.Rule{ruleA, ruleB}, e.Rules())
		_, pending := e.Pending()
		assert.False(t, pending)
	})

	t.Run("append_keeps_undo_slot", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)
		c.On("CommitRules", []rules.Rule{ruleB}).Return(nil).Once()
		c.On("CommitRules", mock.Anything).Return(saveErr)

		_, err := e.RemoveAt(0)
		require.NoError(t, err)

		err = e.Append(ruleC)
		assert.ErrorIs(t, err, saveErr)
		assert.Equal(t, []rules.Rule{ruleB}, e.Rules())
		entry, pending := e.Pending()
		assert.True(t, pending)
		assert.Equal(t, ruleA, entry.Rule)
	})

	t.Run("undo_keeps_slot", func(t *testing.T) {
		e, c := newEditor(t, ruleB)
		c.On("CommitRules", mock.Anything).Return(saveErr)
		e.Restore(editor.UndoEntry{Index: 0, Rule: ruleA})

		undone, err := e.UndoLastRemoval()
		assert.Error(t, err)
		assert.False(t, undone)
		assert.Equal(t, []rules.Rule{ruleB}, e.Rules())
		_, pending := e.Pending()
		assert.True(t, pending)
	})

	t.Run("move", func(t *testing.T) {
		e, c := newEditor(t, ruleA, ruleB)
		c.On("CommitRules", mock.Anything).Return(saveErr)

		moved, err := e.MoveUp(1)
		assert.Error(t, err)
		assert.False(t, moved)
		assert.Equal(t, []rules.Rule{ruleA, ruleB}, e.Rules())
	})
}

func TestEditor_RulesIsACopy(t *testing.T) {
	initial := []rules.Rule{ruleA}
	e := editor.New(initial, editor.CommitFunc(func([]rules.Rule) error { return nil }))

	initial[0] = ruleB
	got := e.Rules()
	got[0] = ruleC
	assert.Equal(t, []rules.Rule{ruleA}, e.Rules())
}

func TestEditor_Reset(t *testing.T) {
	e := editor.New([]rules.Rule{ruleA}, nil)
	e.Restore(editor.UndoEntry{Index: 0, Rule: ruleB})

	e.Reset([]rules.Rule{ruleC})
	assert.Equal(t, []rules.Rule{ruleC}, e.Rules())
	_, pending := e.Pending()
	assert.False(t, pending)
}
