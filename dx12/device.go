package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

type Device struct {
	api      d3d12.API
	device   d3d12.Device
	software bool
}

// Create makes a device on the adapter dxgi selected. Without one, or when
// that fails, it falls back to the WARP software adapter.
func (d *Device) Create(dxgi *DXGI) error {
	d.Destroy()

	adapter := dxgi.Adapter()
	if adapter == nil {
		return d.createWARP(dxgi, ErrNoAdapter)
	}
	device, err := dxgi.API().CreateDevice(adapter, MinFeatureLevel)
	if err != nil {
		return d.createWARP(dxgi, err)
	}
	d.api = dxgi.API()
	d.device = device
	Logger().Debug("device created", "adapter", dxgi.AdapterDesc().Description)
	return nil
}

// CreateWARP makes a device on the WARP software adapter without trying the
// selected hardware adapter.
func (d *Device) CreateWARP(dxgi *DXGI) error {
	d.Destroy()
	return d.createWARP(dxgi, nil)
}

func (d *Device) createWARP(dxgi *DXGI, hwErr error) error {
	warp, err := dxgi.Factory().EnumWarpAdapter()
	if err != nil {
		return errors.Wrap(errors.CombineErrors(hwErr, err), "create device")
	}
	defer warp.Release()

	device, err := dxgi.API().CreateDevice(warp, MinFeatureLevel)
	if err != nil {
		return errors.Wrap(errors.CombineErrors(hwErr, err), "create device")
	}
	d.api = dxgi.API()
	d.device = device
	d.software = true
	if hwErr != nil {
		Logger().Info("using software adapter (WARP)", "reason", hwErr)
	} else {
		Logger().Info("using software adapter (WARP)")
	}
	return nil
}

func (d *Device) Get() d3d12.Device {
	mustBeCreated(d.device != nil, "device")
	return d.device
}

// API returns the native entry points the device was created through.
func (d *Device) API() d3d12.API {
	mustBeCreated(d.device != nil, "device")
	return d.api
}

// IsSoftware reports whether the device runs on the WARP adapter.
func (d *Device) IsSoftware() bool {
	mustBeCreated(d.device != nil, "device")
	return d.software
}

func (d *Device) Destroy() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	d.api = nil
	d.software = false
}
