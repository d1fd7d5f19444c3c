package edition

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/versediff/core/errors"
	"github.com/FocuswithJustin/versediff/internal/validation"
)

// reader wraps an edition file with automatic decompression handling.
type reader struct {
	io.Reader
	file         *os.File
	decompressor io.Closer
	fileType     validation.FileType
}

// openReader opens path and detects from its leading bytes whether the
// content is plain text, xz or gzip.
func openReader(path string) (*reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fileType, err := validation.ValidateFileType(f, path)
	if err != nil {
		f.Close()
		return nil, errors.NewUnsupported("edition content", err.Error())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewind: %w", err)
	}
	br := bufio.NewReader(f)

	r := &reader{Reader: br, file: f, fileType: fileType}
	switch fileType {
	case validation.FileTypeXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r.Reader = xzr
	case validation.FileTypeGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		r.Reader = gzr
		r.decompressor = gzr
	}
	return r, nil
}

// readAll reads the decoded content, refusing anything larger than limit.
func (r *reader) readAll(limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("decoded content exceeds %d bytes", limit)
	}
	return data, nil
}

// Close closes the decompressor, if any, and the file.
func (r *reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
