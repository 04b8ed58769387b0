// Package archive produces the xz-compressed copy of the corpus database that
// ships with the reader application.
package archive

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/risale/core/errors"
)

// Ext is appended to the database path to name the compressed copy.
const Ext = ".xz"

// PathFor returns the compressed file path for src.
func PathFor(src string) string {
	return src + Ext
}

// CompressFile writes an xz-compressed copy of src to dst and returns the
// number of compressed bytes written. dst is written to a temporary file in
// the same directory and renamed into place.
func CompressFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.NewIO("open", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return 0, errors.NewIO("create", dst, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := compress(tmp, in); err != nil {
		tmp.Close()
		return 0, errors.NewIO("compress", src, err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, errors.NewIO("stat", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.NewIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return 0, errors.NewIO("rename", dst, err)
	}
	return info.Size(), nil
}

func compress(w io.Writer, r io.Reader) error {
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := io.Copy(xzw, r); err != nil {
		xzw.Close()
		return err
	}
	return xzw.Close()
}

// DecompressFile restores an xz file written by CompressFile.
func DecompressFile(src, dst string) error {
	if !strings.HasSuffix(src, Ext) {
		return errors.NewValidation("path", "expected "+Ext+" suffix: "+src)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.NewIO("open", src, err)
	}
	defer in.Close()

	xzr, err := xz.NewReader(in)
	if err != nil {
		return &errors.ParseError{Format: "xz", Path: src, Message: err.Error(), Err: err}
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	if _, err := io.Copy(out, xzr); err != nil {
		out.Close()
		return errors.NewIO("decompress", src, err)
	}
	if err := out.Close(); err != nil {
		return errors.NewIO("close", dst, err)
	}
	return nil
}
