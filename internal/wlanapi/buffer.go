package wlanapi

import "unsafe"

// Buffer owns one allocation returned by the service. Release hands it back
// through the same service; later calls to Release are no-ops and Pointer
// returns nil once released.
type Buffer struct {
	svc Service
	ptr unsafe.Pointer
}

func acquire(svc Service, p unsafe.Pointer) *Buffer {
	return &Buffer{svc: svc, ptr: p}
}

// Pointer returns the owned memory, or nil after Release.
func (b *Buffer) Pointer() unsafe.Pointer {
	if b == nil {
		return nil
	}
	return b.ptr
}

func (b *Buffer) Release() {
	if b == nil || b.ptr == nil {
		return
	}
	b.svc.FreeMemory(b.ptr)
	b.ptr = nil
}
