// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ulikunitz/zdata"
	"github.com/ulikunitz/zlib/internal/tuning"
	"github.com/ulikunitz/zlib/zlib"
)

var (
	_silesiaFiles []tuning.File
	silesiaOnce   sync.Once
)

func silesiaFiles() []tuning.File {
	silesiaOnce.Do(func() {
		var err error
		_silesiaFiles, err = tuning.Files(zdata.Silesia)
		if err != nil {
			panic(fmt.Errorf("silesiaFiles() error %w", err))
		}
	})
	return _silesiaFiles
}

// ratioBenchmark runs the compression of the corpus and reports the
// compression ratio as extra metric c/u.
func ratioBenchmark(compress func(files []tuning.File) (int64, error)) func(b *testing.B) {
	return func(b *testing.B) {
		files := silesiaFiles()
		size := tuning.Size(files)
		b.SetBytes(size)
		var (
			err            error
			compressedSize int64
		)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			compressedSize, err = compress(files)
			if err != nil {
				b.Fatalf("compress error %s", err)
			}
		}
		b.StopTimer()
		r := float64(compressedSize) / float64(size)
		b.ReportMetric(r, "c/u")
	}
}

func writerBenchmark(cfg zlib.WriterConfig) func(b *testing.B) {
	return ratioBenchmark(func(files []tuning.File) (int64, error) {
		return tuning.Compress(files, cfg)
	})
}

func referenceBenchmark(level int) func(b *testing.B) {
	return ratioBenchmark(func(files []tuning.File) (int64, error) {
		return tuning.ReferenceCompress(files, level)
	})
}
