// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Command zlibtune measures compression ratio and speed of the zlib
// parameters on the Silesia corpus and compares them with the
// reference implementation.
package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/zlib/zlib"
)

type config struct {
	name string
	cfg  zlib.WriterConfig
}

// mbPerSec returns the Megabytes (1 000 000 bytes) per seconds that are
// processed.
func mbPerSec(r testing.BenchmarkResult) float64 {
	if v, ok := r.Extra["MB/s"]; ok {
		return v
	}
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

func ratio(r testing.BenchmarkResult) float64 {
	if x, ok := r.Extra["c/u"]; ok {
		return x
	}
	return math.NaN()
}

func makeConfigs() []config {
	var configs []config
	for level := 0; level <= 9; level++ {
		for _, s := range []zlib.Strategy{zlib.DefaultStrategy,
			zlib.Filtered, zlib.HuffmanOnly} {
			for _, wbits := range []int{12, 15} {
				configs = append(configs, config{
					name: fmt.Sprintf("l%d-%s-w%d",
						level, s, wbits),
					cfg: zlib.WriterConfig{
						Level:      level,
						ZeroLevel:  level == 0,
						Strategy:   s,
						WindowBits: wbits,
					},
				})
			}
		}
	}
	return configs
}

func main() {
	testing.Init()
	reference := make([]float64, 10)
	for level := range reference {
		r := testing.Benchmark(referenceBenchmark(level))
		reference[level] = ratio(r)
		fmt.Printf("reference level %d\t%.3f c/u\t%.2f MB/s\n",
			level, ratio(r), mbPerSec(r))
	}
	for _, c := range makeConfigs() {
		r := testing.Benchmark(writerBenchmark(c.cfg))
		x := ratio(r)
		fmt.Printf("%s\t%.3f c/u\t%+.3f\t%.2f MB/s\n", c.name, x,
			x-reference[c.cfg.Level], mbPerSec(r))
		if x > reference[c.cfg.Level]*1.05 {
			pretty.Println(c.cfg)
		}
	}
}
