package driver

import (
	"errors"
	"os"
	"path/filepath"

	"postfix/internal/diag"
	"postfix/internal/source"
)

// WriteBack replaces res.Path with res.Output when the file changed.
// The write is atomic (temp file + rename) and keeps the file mode.
// Failures are also added to res.Bag as IO4002.
func WriteBack(res *Result) error {
	if res == nil || res.Failed() || !res.Changed {
		return nil
	}
	if err := writeAtomic(res.Path, []byte(res.Output)); err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteErr, source.Span{File: res.FileID}, "failed to write file: "+err.Error()))
		return err
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err = errors.Join(werr, cerr); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
