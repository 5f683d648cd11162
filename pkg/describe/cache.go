// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes Reflect per type. Concurrent first requests for the same
// type share one describe call. Failed descriptions are not cached.
type Cache struct {
	opts  []Option
	types sync.Map // reflect.Type -> *Component
	group singleflight.Group
}

// NewCache returns a cache that describes types with opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{opts: opts}
}

// Get returns the description of t.
func (c *Cache) Get(t reflect.Type) (*Component, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if v, ok := c.types.Load(t); ok {
		return v.(*Component), nil
	}
	v, err, _ := c.group.Do(typeKey(t), func() (any, error) {
		if v, ok := c.types.Load(t); ok {
			return v, nil
		}
		comp, err := Reflect(t, c.opts...)
		if err != nil {
			return nil, err
		}
		c.types.Store(t, comp)
		return comp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Component), nil
}

// typeKey identifies t by its runtime descriptor. Names are not unique:
// types declared inside different functions may share one.
func typeKey(t reflect.Type) string {
	return fmt.Sprintf("%p", t)
}
