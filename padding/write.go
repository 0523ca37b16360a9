package padding

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// writeAtomic streams fn's output into a temporary file next to path and
// renames it over path once fn, the flush and the sync all succeed.
func writeAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err = fn(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}
