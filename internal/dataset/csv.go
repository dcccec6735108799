package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"go.uber.org/multierr"
)

// ReadFile loads all rows of a delimited table. A missing or unparseable
// file is an explicit IO error, never an empty result.
func ReadFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("opening table %s", filepath.Base(path)))
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("decoding table %s", filepath.Base(path)))
	}
	return rows, nil
}

// WriteFile writes all rows with a header line, fully and atomically from
// the caller's point of view: the handle is closed on every exit path.
func WriteFile[T any](path string, rows []T) (err error) {
	f, createErr := os.Create(path)
	if createErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, createErr, fmt.Sprintf("creating table %s", filepath.Base(path)))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = multierr.Append(err, pkgerrors.Wrap(pkgerrors.CodeIO, closeErr, fmt.Sprintf("closing table %s", filepath.Base(path))))
		}
	}()

	if marshalErr := gocsv.MarshalFile(&rows, f); marshalErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, marshalErr, fmt.Sprintf("encoding table %s", filepath.Base(path)))
	}
	return nil
}
