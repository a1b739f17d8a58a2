package cleaner

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temp file beside path and renames it over
// path. The original is only replaced once the new content is fully written.
// A symlinked path is resolved first so the link target is rewritten and the
// link itself survives.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
