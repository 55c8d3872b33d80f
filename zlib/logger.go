// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"log"
	"os"

	"github.com/ulikunitz/zlib/xlog"
)

// debug is the logger for block decisions. It is nil by default and
// nothing is logged.
var debug xlog.Logger

// debugOn switches debug logging to standard error. It is used by tests.
func debugOn() {
	debug = log.New(os.Stderr, "zlib: ", 0)
}

// debugOff turns debug logging off.
func debugOff() {
	debug = nil
}
