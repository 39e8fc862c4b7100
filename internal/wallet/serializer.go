package wallet

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

const defaultIndent = "    "

// ToDocument renders the header and the tree of w
func ToDocument(w *Wallet) Document {
	d := w.headerDocument()

	return append(d, w.tree.document()...)
}

// ToJSON renders w as indented JSON
func ToJSON(w *Wallet) ([]byte, error) {
	return ToJSONIndent(w, defaultIndent)
}

// ToJSONIndent renders w as JSON using indent, compact when indent is empty
func ToJSONIndent(w *Wallet, indent string) ([]byte, error) {
	doc := ToDocument(w)

	if indent == "" {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal wallet")
		}

		return b, nil
	}

	b, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal wallet")
	}

	return b, nil
}

// SaveToFile writes w as indented JSON to path
func SaveToFile(w *Wallet, path string) error {
	return SaveToFileIndent(w, path, defaultIndent)
}

// SaveToFileIndent writes w as JSON to path using indent, replacing any
// existing file
func SaveToFileIndent(w *Wallet, path, indent string) error {
	return writeFile(w, path, indent, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// CreateFileIndent writes w as JSON to a new file at path using indent. It
// fails with ErrIOFailure when path already exists.
func CreateFileIndent(w *Wallet, path, indent string) error {
	return writeFile(w, path, indent, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

func writeFile(w *Wallet, path, indent string, flag int) (err error) {
	b, err := ToJSONIndent(w, indent)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, flag, 0o600)
	if err != nil {
		return errors.Wrapf(ErrIOFailure, "failed to create %s: %v", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(ErrIOFailure, "failed to close %s: %v", path, cerr)
		}
	}()

	if _, err := f.Write(b); err != nil {
		return errors.Wrapf(ErrIOFailure, "failed to write %s: %v", path, err)
	}

	return nil
}
