// Package vault reads the folder tree of a notes vault. It never writes.
package vault

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
)

// RootPath is how the vault root is listed among folder paths
const RootPath = "/"

// Vault is a read-only view of a vault directory
type Vault struct {
	fs   afero.Fs
	root string
}

// New creates a vault rooted at root on fs
func New(fs afero.Fs, root string) *Vault {
	return &Vault{fs: fs, root: root}
}

// Root returns the vault directory
func (v *Vault) Root() string {
	return v.root
}

// Fs returns the filesystem the vault is read from
func (v *Vault) Fs() afero.Fs {
	return v.fs
}

// FolderPaths lists every folder as a slash-separated path relative to the
// root, sorted, with the root itself listed as "/". Hidden folders and
// their contents are skipped.
func (v *Vault) FolderPaths() ([]string, error) {
	logger := logging.GetLogger("vault")
	paths := []string{RootPath}

	err := afero.Walk(v.fs, v.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == v.root {
				return err
			}
			logger.Warn().Err(err).Str("path", p).Msg("Skipping unreadable entry")
			return nil
		}
		if !info.IsDir() || p == v.root {
			return nil
		}
		if isHidden(info.Name()) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, norm.NFC.String(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultAccess, "failed to list folders in %s", v.root).
			WithDetail("root", v.root)
	}

	sort.Strings(paths)
	logger.Debug().Int("folders", len(paths)).Str("root", v.root).Msg("Listed vault folders")
	return paths, nil
}

// HasDocument reports whether doc (vault-relative) is an existing file
func (v *Vault) HasDocument(doc string) bool {
	info, err := v.fs.Stat(filepath.Join(v.root, filepath.FromSlash(doc)))
	return err == nil && !info.IsDir()
}

// FolderNames returns the distinct last segments of folderPaths in
// first-seen order, leaving out the root
func FolderNames(folderPaths []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range folderPaths {
		if p == RootPath || p == "" {
			continue
		}
		name := path.Base(p)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ParentPath returns the folder holding doc, "" for documents at the root
func ParentPath(doc string) string {
	dir := path.Dir(path.Clean("/" + strings.TrimPrefix(doc, "/")))
	return strings.TrimPrefix(dir, "/")
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
