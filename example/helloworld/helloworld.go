// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/describe"
)

type helloArgs struct {
	Name  string        `default:"World" help:"Who to greet"`
	Every time.Duration `short:"e" default:"0s" help:"Repeat at this interval until interrupted"`
}

func hello(ctx context.Context, a helloArgs) error {
	for {
		fmt.Printf("Hello, %s!\n", a.Name)
		if a.Every <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.Every):
		}
	}
}

func main() {
	c := describe.MustNew("helloworld", []describe.MethodSpec{
		describe.Func("hello", hello, describe.Short("hi"), describe.Help("Print a greeting.")),
	}, describe.WithDescription("Hello, World"))
	os.Exit(cmdline.Run(context.Background(), c, os.Args[1:]))
}
