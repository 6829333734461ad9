package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// MinFeatureLevel is the feature level every adapter and device is checked
// against.
const MinFeatureLevel = d3d12.FeatureLevel11_0

// DXGI owns the DXGI factory and the display adapter chosen from it.
type DXGI struct {
	api         d3d12.API
	factory     d3d12.Factory
	adapter     d3d12.Adapter
	adapterDesc d3d12.AdapterDesc
}

func (x *DXGI) Create(api d3d12.API, debug bool) error {
	x.Destroy()

	var flags d3d12.FactoryFlags
	if debug {
		flags |= d3d12.FactoryFlagDebug
	}
	factory, err := api.CreateFactory(flags)
	if err != nil {
		return errors.Wrap(err, "create DXGI factory")
	}
	x.api = api
	x.factory = factory
	Logger().Debug("dxgi factory created", "debug", debug)
	return nil
}

// SetDisplayAdapter picks the first hardware adapter, in enumeration order, on
// which a device can be created. Adapters it rejects are released.
func (x *DXGI) SetDisplayAdapter() error {
	mustBeCreated(x.factory != nil, "dxgi factory")

	for i := uint32(0); ; i++ {
		adapter, err := x.factory.EnumAdapters1(i)
		if errors.Is(err, d3d12.ErrNotFound) {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "enumerate adapter %d", i)
		}

		desc, err := adapter.Desc1()
		if err != nil {
			adapter.Release()
			return errors.Wrapf(err, "describe adapter %d", i)
		}
		if desc.Flags&d3d12.AdapterFlagSoftware != 0 {
			Logger().Debug("skipping software adapter", "index", i, "name", desc.Description)
			adapter.Release()
			continue
		}
		if err := x.api.ProbeDevice(adapter, MinFeatureLevel); err != nil {
			Logger().Debug("adapter cannot create a device", "index", i, "name", desc.Description, "err", err)
			adapter.Release()
			continue
		}

		x.releaseAdapter()
		x.adapter = adapter
		x.adapterDesc = desc
		Logger().Info("display adapter selected",
			"index", i,
			"name", desc.Description,
			"vendor", desc.VendorID,
			"videoMemoryMB", desc.DedicatedVideoMemory>>20,
		)
		return nil
	}
	return ErrNoAdapter
}

func (x *DXGI) Factory() d3d12.Factory {
	mustBeCreated(x.factory != nil, "dxgi factory")
	return x.factory
}

// Adapter returns the selected adapter, or nil when SetDisplayAdapter found
// none.
func (x *DXGI) Adapter() d3d12.Adapter {
	mustBeCreated(x.factory != nil, "dxgi factory")
	return x.adapter
}

func (x *DXGI) AdapterDesc() d3d12.AdapterDesc {
	mustBeCreated(x.adapter != nil, "display adapter")
	return x.adapterDesc
}

func (x *DXGI) API() d3d12.API {
	mustBeCreated(x.factory != nil, "dxgi factory")
	return x.api
}

func (x *DXGI) releaseAdapter() {
	if x.adapter != nil {
		x.adapter.Release()
		x.adapter = nil
		x.adapterDesc = d3d12.AdapterDesc{}
	}
}

func (x *DXGI) Destroy() {
	x.releaseAdapter()
	if x.factory != nil {
		x.factory.Release()
		x.factory = nil
	}
	x.api = nil
}
