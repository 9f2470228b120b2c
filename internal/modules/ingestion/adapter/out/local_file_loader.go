package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rsc.io/pdf"

	ingestionout "neuradocs/internal/modules/ingestion/port/out"
	sessiondomain "neuradocs/internal/modules/session/domain"
	apperrors "neuradocs/internal/platform/errors"
)

type LocalFileLoader struct{}

func NewLocalFileLoader() ingestionout.FileLoader {
	return &LocalFileLoader{}
}

func (l *LocalFileLoader) Load(_ context.Context, path string) (sessiondomain.SelectedFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return sessiondomain.SelectedFile{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessiondomain.SelectedFile{}, fmt.Errorf("%w: %s does not exist", apperrors.ErrInvalidInput, path)
		}
		return sessiondomain.SelectedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return sessiondomain.SelectedFile{}, fmt.Errorf("%w: %s is a directory", apperrors.ErrInvalidInput, path)
	}
	return sessiondomain.SelectedFile{
		Name:  filepath.Base(abs),
		Path:  abs,
		Size:  info.Size(),
		Pages: countPages(abs, info.Size()),
		Payload: func() (io.ReadCloser, error) {
			return os.Open(abs)
		},
	}, nil
}

// countPages reports the page count for display, or 0 when the file cannot be
// parsed. The backend is the only judge of whether a file is usable.
func countPages(path string, size int64) (pages int) {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	doc, err := pdf.NewReader(f, size)
	if err != nil {
		return 0
	}
	return doc.NumPage()
}
