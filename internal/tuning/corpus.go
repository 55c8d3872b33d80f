// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package tuning supports the evaluation of compression parameters on a
// corpus of files.
package tuning

import (
	"bytes"
	"io"
	"io/fs"

	kpzlib "github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/zlib/zlib"
)

// File is a file of the corpus.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Size returns the total size of the files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// Compress compresses each file separately using the configuration and
// returns the total compressed size.
func Compress(files []File, cfg zlib.WriterConfig) (compressedSize int64, err error) {
	for _, f := range files {
		cw := &countWriter{}
		w, err := zlib.NewWriterConfig(cw, cfg)
		if err != nil {
			return compressedSize, err
		}
		_, err = io.Copy(w, bytes.NewReader(f.Data))
		if err == nil {
			err = w.Close()
		}
		compressedSize += cw.n
		if err != nil {
			return compressedSize, err
		}
	}
	return compressedSize, nil
}

// ReferenceCompress compresses each file with the zlib implementation
// of github.com/klauspost/compress. The result is a reference for the
// sizes reported by Compress.
func ReferenceCompress(files []File, level int) (compressedSize int64, err error) {
	for _, f := range files {
		cw := &countWriter{}
		w, err := kpzlib.NewWriterLevel(cw, level)
		if err != nil {
			return compressedSize, err
		}
		_, err = w.Write(f.Data)
		if err == nil {
			err = w.Close()
		}
		compressedSize += cw.n
		if err != nil {
			return compressedSize, err
		}
	}
	return compressedSize, nil
}
