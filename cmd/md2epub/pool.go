package main

import (
	"fmt"

	md2epub "github.com/alnah/go-md2epub"
)

// poolAdapter bridges the library converter pool to the CLI Pool interface.
// Acquire swallows construction errors into a nil return; batch workers
// treat nil as a converter-init failure. Options that could fail (asset
// paths, styles) are validated before the pool is built, so a nil here is
// rare.
type poolAdapter struct {
	pool *md2epub.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire gets a converter, or nil when construction fails.
func (a *poolAdapter) Acquire() CLIConverter {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil
	}
	return conv
}

// Release returns a converter to the pool. Panics on a foreign type:
// anything not produced by Acquire is a programmer error.
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*md2epub.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

// Size reports how many converters the pool can hold.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close shuts the underlying pool down.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// newConvertPool builds the converter pool for a batch run, sized from the
// --workers flag with the library's bounds applied.
func newConvertPool(workers int, opts ...md2epub.Option) *poolAdapter {
	size := md2epub.ResolvePoolSize(workers)
	return &poolAdapter{pool: md2epub.NewConverterPool(size, opts...)}
}
