package engine

import (
	"errors"
	"fmt"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/accesslog"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/alloc"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/fstable"
)

// CreateFile allocates size data blocks with strategy s and links a new file
// under parentID. On any error the disk, the table and the log are unchanged.
func (e *Engine) CreateFile(name string, size int, parentID string, s Strategy) (FileEntry, error) {
	if _, err := e.table.Directory(parentID); err != nil {
		return FileEntry{}, err
	}
	ids, err := alloc.Allocate(e.disk, s, size)
	if err != nil {
		return FileEntry{}, err
	}

	now := e.now()
	entry := &fstable.Entry{
		ID:          e.newID(),
		Name:        name,
		SizeBytes:   e.sizeOf(ids),
		Blocks:      ids,
		Permissions: fstable.FilePermissions,
		CreatedAt:   now,
		ModifiedAt:  now,
		AccessedAt:  now,
	}
	if err := e.table.Insert(parentID, entry); err != nil {
		return FileEntry{}, err
	}
	for i, id := range ids {
		if err := e.disk.Assign(id, entry.ID, fmt.Sprintf("%s:%d", name, i)); err != nil {
			e.rollbackCreate(entry, ids[:i])
			return FileEntry{}, err
		}
	}

	e.appendLog(now, accesslog.OpCreate, entry.ID, name, ids, true)
	return e.table.View(entry), nil
}

func (e *Engine) rollbackCreate(entry *fstable.Entry, assigned []int) {
	for _, id := range assigned {
		_ = e.disk.Release(id)
	}
	_, _ = e.table.Remove(entry.ID)
}

// CreateDirectory links a new empty directory under parentID. Directories own
// no blocks and leave no access-log entry.
func (e *Engine) CreateDirectory(name, parentID string) (FileEntry, error) {
	now := e.now()
	entry := &fstable.Entry{
		ID:          e.newID(),
		Name:        name,
		IsDirectory: true,
		Permissions: fstable.DirPermissions,
		CreatedAt:   now,
		ModifiedAt:  now,
		AccessedAt:  now,
	}
	if err := e.table.Insert(parentID, entry); err != nil {
		return FileEntry{}, err
	}
	return e.table.View(entry), nil
}

// DeleteFile frees every block the file owns, logs the deletion and removes
// the file from its parent.
func (e *Engine) DeleteFile(id string) error {
	entry, ok := e.table.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if entry.IsDirectory {
		return fmt.Errorf("%w: %q", ErrIsDirectory, id)
	}

	for _, b := range entry.Blocks {
		if e.disk.Owner(b) == id {
			if err := e.disk.Release(b); err != nil {
				return err
			}
		}
	}
	e.appendLog(e.now(), accesslog.OpDelete, id, entry.Name, entry.Blocks, true)

	if _, err := e.table.Remove(id); err != nil {
		return errors.Join(fmt.Errorf("remove %q", id), err)
	}
	return nil
}

// ReadFile simulates reading a file. The read succeeds unless one of the
// file's blocks is Corrupted; either way a read entry is logged and returned.
func (e *Engine) ReadFile(id string) (LogEntry, error) {
	entry, ok := e.table.Lookup(id)
	if !ok {
		return LogEntry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	success := true
	for _, b := range entry.Blocks {
		if e.disk.Status(b) == Corrupted {
			success = false
			break
		}
	}
	entry.AccessedAt = e.now()
	return e.appendLog(entry.AccessedAt, accesslog.OpRead, id, entry.Name, entry.Blocks, success), nil
}

// File returns a copy of the entry with the given id.
func (e *Engine) File(id string) (FileEntry, error) {
	entry, ok := e.table.Lookup(id)
	if !ok {
		return FileEntry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.table.View(entry), nil
}

// Files returns every entry, the root included, in creation order.
func (e *Engine) Files() []FileEntry {
	all := e.table.All()
	out := make([]FileEntry, len(all))
	for i, entry := range all {
		out[i] = e.table.View(entry)
	}
	return out
}

// DirectoryTree returns the subtree rooted at id. Use RootID for the whole tree.
func (e *Engine) DirectoryTree(id string) (TreeNode, error) {
	return e.table.Tree(id)
}
