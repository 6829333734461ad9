// Package dx12 owns the Direct3D 12 objects of the triangle renderer. Each
// wrapper holds one native object between Create and Destroy. Using one before
// a successful Create panics.
package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

var (
	// ErrNotCreated is the panic value, possibly wrapped, of every accessor
	// called on a wrapper whose Create has not succeeded.
	ErrNotCreated      = errors.New("object has not been created")
	ErrNoAdapter       = errors.New("no hardware adapter supports feature level 11_0")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrWrongHeapType   = errors.New("wrong descriptor heap type")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrShaderCompile   = errors.New("shader compilation failed")
	ErrDeviceLost      = errors.New("device lost")
)

func mustBeCreated(created bool, what string) {
	if !created {
		panic(errors.Wrap(ErrNotCreated, what))
	}
}

// deviceLost marks native device-removed style failures with ErrDeviceLost.
func deviceLost(err error) error {
	if err != nil && d3d12.IsDeviceLost(err) {
		return errors.Mark(err, ErrDeviceLost)
	}
	return err
}
