package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/rules.md":          {Data: []byte("# Rules\n\nRules run in order.")},
		"help/option-vault.txt":  {Data: []byte("The vault root.")},
		"help/settings.txxt":     {Data: []byte("Settings Guide")},
		"help/ignored.json":      {Data: []byte("{}")},
		"help/nested/regexp.txt": {Data: []byte("ECMAScript flavour.")},
	}
}

func TestTopicManager_Scan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.Scan())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"rules", true, "# Rules\n\nRules run in order."},
			{"option-vault", true, "The vault root."},
			{"regexp", true, "ECMAScript flavour."},
			{"settings", false, ""},
			{"ignored", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"settings"}, tm.ListTopics())
	})

	t.Run("nil filesystem has no topics", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Scan())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic_FlagStyle(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.Scan())

	for _, name := range []string{"--vault", "-vault", "vault", "option-vault"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-vault", topic.Name)
	}
}

func TestTopicManager_WriteTopicList(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.Scan())

	buf := &bytes.Buffer{}
	tm.WriteTopicList(buf, "pathtitle")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  regexp\n  rules\n")
	assert.Contains(t, out, "Option topics:\n  --vault\n")
	assert.Contains(t, out, "Use 'pathtitle help <topic>'")
}

func TestTopicManager_WriteTopicList_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	New(nil).WriteTopicList(buf, "pathtitle")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "pathtitle", Short: "root", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "rules", Short: "Manage rules", Run: func(*cobra.Command, []string) {}})
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return buf.String()
}

func TestInitialize(t *testing.T) {
	t.Run("topic wins over command of the same name", func(t *testing.T) {
		out := execute(t, newInitialized(t), "help", "rules")
		assert.Equal(t, "# Rules\n\nRules run in order.", out)
	})

	t.Run("flag topic", func(t *testing.T) {
		assert.Equal(t, "The vault root.", execute(t, newInitialized(t), "help", "vault"))
		assert.Equal(t, "The vault root.", execute(t, newInitialized(t), "help", "--", "--vault"))
	})

	t.Run("global flags before help", func(t *testing.T) {
		root := newInitialized(t)
		root.PersistentFlags().String("vault", "", "vault root")

		assert.Equal(t, "# Rules\n\nRules run in order.", execute(t, root, "--vault", "/tmp", "help", "rules"))

		root = newInitialized(t)
		root.PersistentFlags().String("vault", "", "vault root")
		assert.Contains(t, execute(t, root, "--vault", "/tmp", "help", "topics"), "Available help topics:")
	})

	t.Run("topic list", func(t *testing.T) {
		out := execute(t, newInitialized(t), "help", "topics")
		assert.Contains(t, out, "Available help topics:")
	})

	t.Run("command help", func(t *testing.T) {
		root := newRoot()
		root.RemoveCommand(root.Commands()[0])
		sub := &cobra.Command{Use: "folders", Short: "List vault folders", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(sub)
		require.NoError(t, Initialize(root, testFS()))

		out := execute(t, root, "help", "folders")
		assert.Contains(t, out, "List vault folders")
	})

	t.Run("root help", func(t *testing.T) {
		out := execute(t, newInitialized(t), "help")
		assert.True(t, strings.Contains(out, "Usage:"))
		assert.Contains(t, out, "rules")
	})
}

func newInitialized(t *testing.T) *cobra.Command {
	t.Helper()
	root := newRoot()
	require.NoError(t, Initialize(root, testFS()))
	return root
}
