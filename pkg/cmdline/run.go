// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var ran atomic.Bool

// Run processes args against component once for the life of the process
// and returns an exit code: ExitOK, ExitUsage for a bad command line, or
// ExitFailure when the operation fails or the component is invalid.
//
// The context passed to the operation is cancelled on interrupt or
// termination signals, so long-running operations can stop cleanly.
func Run(ctx context.Context, component any, args []string, opts ...Option) int {
	cfg := newConfig(opts)
	if !ran.CompareAndSwap(false, true) {
		fmt.Fprintln(cfg.out, ErrAlreadyRun)
		return ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := New(component, opts...)
	if err != nil {
		fmt.Fprintln(cfg.out, err)
		return ExitFailure
	}
	return ExitCode(d.Process(ctx, args...))
}
