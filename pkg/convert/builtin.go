// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// TimeLayouts are tried in order when converting to time.Time. Layouts
// without a zone are read in the local time zone.
var TimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func newBuiltinRegistry() *Registry {
	r := &Registry{funcs: make(map[reflect.Type]Func)}
	Register(r, parseBool)
	Register(r, time.ParseDuration)
	Register(r, parseTime)
	Register(r, parseURL)
	Register(r, func(s string) (url.URL, error) {
		u, err := parseURL(s)
		if err != nil {
			return url.URL{}, err
		}
		return *u, nil
	})
	Register(r, uuid.Parse)
	Register(r, semver.NewVersion)
	Register(r, func(s string) (semver.Version, error) {
		v, err := semver.NewVersion(s)
		if err != nil {
			return semver.Version{}, err
		}
		return *v, nil
	})
	return r
}

// parseBool accepts "+" and "-" in addition to the forms strconv.ParseBool
// understands, so `--flag+` and `--flag-` read naturally.
func parseBool(s string) (bool, error) {
	switch s {
	case "+":
		return true, nil
	case "-":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: invalid bool value %q", ErrSyntax, s)
	}
	return b, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range TimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrSyntax, s)
}

func parseURL(s string) (*url.URL, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrSyntax)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %w", ErrSyntax, s, err)
	}
	return u, nil
}
