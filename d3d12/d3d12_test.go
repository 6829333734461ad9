package d3d12

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGUID_Layout(t *testing.T) {
	assert := assert.New(t)

	g := MustParseGUID("189819f1-1db6-4b57-be54-1821339b85f7")
	assert.Equal(uint32(0x189819f1), g.Data1)
	assert.Equal(uint16(0x1db6), g.Data2)
	assert.Equal(uint16(0x4b57), g.Data3)
	assert.Equal([8]byte{0xbe, 0x54, 0x18, 0x21, 0x33, 0x9b, 0x85, 0xf7}, g.Data4)
	assert.Equal("{189819f1-1db6-4b57-be54-1821339b85f7}", g.String())

	u := uuid.MustParse("0a753dcf-c4d8-4b91-adf6-be5a60d95a76")
	assert.Equal(u, GUIDFromUUID(u).UUID())
}

func TestHResult_Errors(t *testing.T) {
	assert := assert.New(t)

	assert.True(DXGIErrorNotFound.Failed())
	assert.False(DXGIStatusOccluded.Failed())
	assert.False(StatusFalse.Failed())

	err := errors.Wrap(HResultError{Code: DXGIErrorNotFound}, "enum adapters")
	assert.True(errors.Is(err, ErrNotFound))
	code, ok := Code(err)
	assert.True(ok)
	assert.Equal(DXGIErrorNotFound, code)

	assert.True(IsDeviceLost(errors.Wrap(HResultError{Code: DXGIErrorDeviceRemoved}, "present")))
	assert.False(IsDeviceLost(ErrOccluded))
	assert.False(IsDeviceLost(errors.New("plain")))

	assert.Equal("HRESULT(0x12345678)", HResult(0x12345678).String())
	assert.Equal("E_NOINTERFACE", ErrorNoInterface.String())
}

func TestDescriptorHandle_Offset(t *testing.T) {
	base := CPUDescriptorHandle{Ptr: 0x1000}
	for i := 0; i < 4; i++ {
		assert.Equal(t, uintptr(0x1000+i*32), base.Offset(i, 32).Ptr)
	}
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	rs := DefaultRasterizerDesc()
	assert.Equal(FillModeSolid, rs.FillMode)
	assert.Equal(CullModeBack, rs.CullMode)
	assert.Equal(True, rs.DepthClipEnable)

	bs := DefaultBlendDesc()
	for _, rt := range bs.RenderTarget {
		assert.Equal(False, rt.BlendEnable)
		assert.Equal(ColorWriteEnableAll, rt.RenderTargetWriteMask)
	}

	bd := BufferDesc(84)
	assert.Equal(ResourceDimensionBuffer, bd.Dimension)
	assert.Equal(uint64(84), bd.Width)
	assert.Equal(TextureLayoutRowMajor, bd.Layout)

	assert.Equal(ResourceStates(0xac3), ResourceStateGenericRead)
	assert.Equal("R8G8B8A8_UNORM", FormatR8G8B8A8UNorm.String())
	assert.Equal("RTV", DescriptorHeapTypeRTV.String())
}
