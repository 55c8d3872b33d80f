// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Command gzlib compresses and decompresses files in the zlib format.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/ulikunitz/zlib/xlog"
	"github.com/ulikunitz/zlib/zlib"
)

const (
	zlibExt  = ".zz"
	usageStr = `Usage: gzlib [OPTION]... [FILE]...
Compress or uncompress FILEs in the zlib format (by default, compress
FILES in place).

  -c, --stdout      write to standard output and don't delete input files
  -d, --decompress  force decompression
  -f, --force       force overwrite of output file and compress links
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -l, --list        list information about compressed files
  -q, --quiet       suppress all warnings
  -v, --verbose     verbose mode
  -V, --version     display version string
  -0 ... -9         compression level; default is 6

With no file, or when FILE is -, read standard input.
`
)

// options contains the settings of the command line.
type options struct {
	stdout     bool
	decompress bool
	force      bool
	keep       bool
	list       bool
	level      int
}

// level collects the compression level given by -0 ... -9.
type level int

const defaultLevel level = 6

func (l *level) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for _, c := range arg {
		if '0' <= c && c <= '9' {
			*l = level(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// filter removes the level flags from args.
func (l *level) filter(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		f := l.filterArg(arg)
		if f == "-" && arg != "-" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.CommandLine.SetInterspersed(true)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help       = pflag.BoolP("help", "h", false, "")
		stdout     = pflag.BoolP("stdout", "c", false, "")
		decompress = pflag.BoolP("decompress", "d", false, "")
		force      = pflag.BoolP("force", "f", false, "")
		keep       = pflag.BoolP("keep", "k", false, "")
		list       = pflag.BoolP("list", "l", false, "")
		quiet      = pflag.BoolP("quiet", "q", false, "")
		verbose    = pflag.BoolP("verbose", "v", false, "")
		version    = pflag.BoolP("version", "V", false, "")
		lvl        = defaultLevel
	)

	args := lvl.filter(os.Args[1:])
	if err := pflag.CommandLine.Parse(args); err != nil {
		xlog.Fatal(err)
	}

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *version {
		fmt.Printf("gzlib %s\n", zlib.Version)
		os.Exit(0)
	}
	if *quiet {
		xlog.SetFlags(xlog.Flags() | xlog.Lnowarn)
	}
	if *verbose {
		xlog.SetFlags(xlog.Flags() | xlog.Ldebug)
	}

	opts := &options{
		stdout:     *stdout,
		decompress: *decompress,
		force:      *force,
		keep:       *keep,
		list:       *list,
		level:      int(lvl),
	}
	xlog.Debugf("options %+v", *opts)

	files := pflag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	if opts.list {
		if err := listFiles(os.Stdout, files); err != nil {
			os.Exit(1)
		}
		return
	}
	if files[0] == "-" && len(files) == 1 {
		opts.stdout = true
	}
	exit := 0
	for _, path := range files {
		if err := processFile(path, opts); err != nil {
			exit = 1
		}
	}
	os.Exit(exit)
}
