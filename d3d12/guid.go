package d3d12

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// GUID has the memory layout of the Win32 GUID / IID.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUIDFromUUID converts the RFC 4122 byte order of u into the mixed-endian GUID
// layout.
func GUIDFromUUID(u uuid.UUID) GUID {
	g := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:16])
	return g
}

func MustParseGUID(s string) GUID {
	return GUIDFromUUID(uuid.MustParse(s))
}

func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

func (g GUID) String() string {
	return "{" + g.UUID().String() + "}"
}

var (
	IIDDXGIFactory4             = MustParseGUID("1bc6ea02-ef36-464f-bf0c-21ca39e5168a")
	IIDDXGISwapChain3           = MustParseGUID("94d99bdb-f1f8-4ab0-b236-7da0170edab1")
	IIDD3D12Debug               = MustParseGUID("344488b7-6846-474b-b989-f027448245e0")
	IIDD3D12Debug1              = MustParseGUID("affaa4ca-63fe-4d8e-b8ad-159000af4304")
	IIDD3D12Device              = MustParseGUID("189819f1-1db6-4b57-be54-1821339b85f7")
	IIDD3D12CommandQueue        = MustParseGUID("0ec870a6-5d7e-4c22-8cfc-5baae07616ed")
	IIDD3D12CommandAllocator    = MustParseGUID("6102dee4-af59-4b09-b999-b44d73f09b24")
	IIDD3D12GraphicsCommandList = MustParseGUID("5b160d0f-ac1b-4185-8ba8-b3ae42a5a455")
	IIDD3D12DescriptorHeap      = MustParseGUID("8efb471d-616c-4f49-90f7-127bb763fa51")
	IIDD3D12Resource            = MustParseGUID("696442be-a72e-4059-bc79-5b5c98040fad")
	IIDD3D12RootSignature       = MustParseGUID("c54a6b66-72df-4ee8-8be5-a946a1429214")
	IIDD3D12PipelineState       = MustParseGUID("765a30f3-f624-4c6f-a828-ace948622445")
	IIDD3D12Fence               = MustParseGUID("0a753dcf-c4d8-4b91-adf6-be5a60d95a76")
)
