// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"testing"

	"github.com/ulikunitz/zlib/zlib"
)

func TestConfigs(t *testing.T) {
	configs := makeConfigs()
	if len(configs) != 10*3*2 {
		t.Fatalf("makeConfigs returned %d configurations", len(configs))
	}
	for _, c := range configs {
		cfg := c.cfg
		cfg.SetDefaults()
		if err := cfg.Verify(); err != nil {
			t.Fatalf("%s: Verify error %s", c.name, err)
		}
	}
}

func BenchmarkRatio(b *testing.B) {
	for _, level := range []int{1, 6, 9} {
		b.Run(fmt.Sprintf("zlib-%d", level), writerBenchmark(
			zlib.WriterConfig{Level: level}))
		b.Run(fmt.Sprintf("reference-%d", level),
			referenceBenchmark(level))
	}
}
