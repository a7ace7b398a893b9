// Package images reconciles an item's image reference list with files on
// local disk. Files live under `<root>/CatalogItems/<itemID>/` with freshly
// generated snowflake tokens as names, original extension preserved; the
// reference list stored on the item carries the public `<prefix>/...` paths.
//
// Filesystem operations are not synchronised across requests: concurrent
// add/delete batches on the same item id can race on the reference list.
package images

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrUnmatchedImage means a delete batch referenced an image that is not in
// the item's current reference list. This is a caller error and aborts the
// batch before any file is touched.
var ErrUnmatchedImage = errors.New("images: reference not in current image set")

const (
	catalogSubdir = "CatalogItems"
	// trashPrefix marks the soft-trash sibling an image is renamed to before
	// its original path is deleted.
	trashPrefix = "_"
)

type Manager struct {
	rootDir string
	prefix  string
	node    *snowflake.Node
}

// NewManager creates the manager and ensures the catalog image root exists.
func NewManager(rootDir, prefix string) (*Manager, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "images: snowflake node")
	}
	if err := os.MkdirAll(filepath.Join(rootDir, catalogSubdir), 0o755); err != nil {
		return nil, errors.Wrap(err, "images: create image root")
	}
	return &Manager{rootDir: rootDir, prefix: prefix, node: node}, nil
}

// WriteImages streams every uploaded file to the item's directory and
// returns the public references in upload order. The first failed write
// aborts the whole batch; files already written are not rolled back.
func (m *Manager) WriteImages(itemID string, files []Upload) ([]string, error) {
	refs := make([]string, 0, len(files))

	for _, file := range files {
		fileName := m.node.Generate().String() + filepath.Ext(file.Name)
		refs = append(refs, path.Join(m.prefix, catalogSubdir, itemID, fileName))

		dst := filepath.Join(m.rootDir, catalogSubdir, itemID, fileName)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, errors.Wrapf(err, "images: create directory for item %s", itemID)
		}
		if err := writeFile(dst, file); err != nil {
			return nil, err
		}
		zap.L().Info("uploaded catalog image",
			zap.String("item_id", itemID), zap.String("file", fileName))
	}

	return refs, nil
}

// DeleteImages removes the given references from disk and from the current
// list. A reference present in the list has its backing file renamed to a
// trash-prefixed sibling and then removed; a reference that is not in the
// list is skipped with a warning. Any rename/remove failure aborts the batch
// without rolling back earlier steps. The updated list is returned.
func (m *Manager) DeleteImages(itemID string, deleteRefs, current []string, archive bool) ([]string, error) {
	updated := append([]string(nil), current...)

	for _, ref := range deleteRefs {
		if !containsRef(updated, ref) {
			zap.L().Warn("image reference not found, skipping",
				zap.String("item_id", itemID), zap.String("ref", ref))
			continue
		}

		fileName := path.Base(ref)
		filePath := filepath.Join(m.rootDir, catalogSubdir, itemID, fileName)
		trashPath := filepath.Join(m.rootDir, catalogSubdir, itemID, trashPrefix+fileName)

		if archive {
			if err := os.Rename(filePath, trashPath); err != nil {
				return nil, errors.Wrapf(err, "images: archive %s", ref)
			}
		}
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "images: remove %s", ref)
		}

		updated = removeRef(updated, ref)
		zap.L().Info("archived catalog image",
			zap.String("item_id", itemID), zap.String("ref", ref))
	}

	return updated, nil
}

// Reconcile resolves an image add/remove request into the new reference
// list. In add mode the uploaded files are written and appended. In delete
// mode every incoming reference must match the current list exactly;
// an unmatched reference aborts with ErrUnmatchedImage before any file is
// touched.
func (m *Manager) Reconcile(itemID string, current []string, add bool, files []Upload, deleteRefs []string) ([]string, error) {
	if add {
		written, err := m.WriteImages(itemID, files)
		if err != nil {
			return nil, err
		}
		return append(append([]string(nil), current...), written...), nil
	}

	for _, ref := range deleteRefs {
		if !containsRef(current, ref) {
			return nil, errors.Wrap(ErrUnmatchedImage, ref)
		}
	}
	return m.DeleteImages(itemID, deleteRefs, current, true)
}

func writeFile(dst string, file Upload) error {
	src, err := file.Open()
	if err != nil {
		return errors.Wrapf(err, "images: open upload %s", file.Name)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "images: create %s", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return errors.Wrapf(err, "images: write %s", dst)
	}
	return nil
}

func containsRef(refs []string, ref string) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

func removeRef(refs []string, ref string) []string {
	for i, r := range refs {
		if r == ref {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}
