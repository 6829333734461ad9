//go:build !windows

package d3d12

// Load always fails: Direct3D 12 only exists on Windows.
func Load() (API, error) {
	return nil, ErrUnsupported
}
