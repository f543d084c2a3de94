// Package wlanapitest provides an in-memory wlanapi.Service that lays out its
// buffers the way wlanapi.dll does and counts every allocation and release.
package wlanapitest

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unsafe"

	"github.com/nhdewitt/wlancreds/internal/wlanapi"
)

var ErrInvalidHandle = errors.New("wlanapitest: invalid handle")

// Profile is a saved profile served by the fake.
type Profile struct {
	Name string
	XML  string

	// FetchErr is returned by GetProfile for this profile.
	FetchErr error
	// UnterminatedName fills the name field without a NUL.
	UnterminatedName bool
	// UnterminatedXML hands back the document without a NUL.
	UnterminatedXML bool
	Flags           uint32
}

// Interface is an adapter served by the fake.
type Interface struct {
	GUID        wlanapi.GUID
	Description string
	State       wlanapi.InterfaceState
	Profiles    []Profile

	// ListErr is returned by GetProfileList for this interface.
	ListErr error
	// NilList makes GetProfileList succeed without a buffer.
	NilList bool
	// UnterminatedDescription fills the description field without a NUL.
	UnterminatedDescription bool
}

// Service is a counting fake of the WLAN configuration service.
type Service struct {
	Interfaces []Interface

	OpenErr    error
	EnumErr    error
	NilEnum    bool
	Negotiated uint32

	// Counters

	Opens          int
	Closes         int
	Allocs         int
	Frees          int
	InvalidFrees   int
	InvalidHandles int

	// LastFlags records the flags of the most recent GetProfile call.
	LastFlags uint32

	handle uintptr
	open   bool
	live   map[unsafe.Pointer]any
}

var _ wlanapi.Service = (*Service)(nil)

// Outstanding is the number of allocations not yet freed.
func (s *Service) Outstanding() int {
	return len(s.live)
}

func (s *Service) OpenHandle(clientVersion uint32) (uintptr, uint32, error) {
	if s.OpenErr != nil {
		return 0, 0, s.OpenErr
	}
	s.Opens++
	s.handle++
	s.open = true

	negotiated := s.Negotiated
	if negotiated == 0 {
		negotiated = clientVersion
	}
	return s.handle, negotiated, nil
}

func (s *Service) CloseHandle(handle uintptr) error {
	if err := s.check(handle); err != nil {
		return err
	}
	s.Closes++
	s.open = false
	return nil
}

func (s *Service) EnumInterfaces(handle uintptr) (unsafe.Pointer, error) {
	if err := s.check(handle); err != nil {
		return nil, err
	}
	if s.EnumErr != nil {
		return nil, s.EnumErr
	}
	if s.NilEnum {
		return nil, nil
	}

	n := len(s.Interfaces)
	size := unsafe.Sizeof(wlanapi.InterfaceInfoList{})
	if n > 1 {
		size += uintptr(n-1) * unsafe.Sizeof(wlanapi.InterfaceInfo{})
	}
	p := s.alloc(size)

	list := (*wlanapi.InterfaceInfoList)(p)
	list.NumberOfItems = uint32(n)
	if n > 0 {
		items := unsafe.Slice(&list.InterfaceInfo[0], n)
		for i, iface := range s.Interfaces {
			items[i].InterfaceGUID = iface.GUID
			items[i].State = uint32(iface.State)
			fill(items[i].InterfaceDescription[:], iface.Description, iface.UnterminatedDescription)
		}
	}
	return p, nil
}

func (s *Service) GetProfileList(handle uintptr, guid *wlanapi.GUID) (unsafe.Pointer, error) {
	if err := s.check(handle); err != nil {
		return nil, err
	}
	iface, err := s.find(guid)
	if err != nil {
		return nil, err
	}
	if iface.ListErr != nil {
		return nil, iface.ListErr
	}
	if iface.NilList {
		return nil, nil
	}

	n := len(iface.Profiles)
	size := unsafe.Sizeof(wlanapi.ProfileInfoList{})
	if n > 1 {
		size += uintptr(n-1) * unsafe.Sizeof(wlanapi.ProfileInfo{})
	}
	p := s.alloc(size)

	list := (*wlanapi.ProfileInfoList)(p)
	list.NumberOfItems = uint32(n)
	if n > 0 {
		items := unsafe.Slice(&list.ProfileInfo[0], n)
		for i, prof := range iface.Profiles {
			items[i].Flags = prof.Flags
			fill(items[i].ProfileName[:], prof.Name, prof.UnterminatedName)
		}
	}
	return p, nil
}

func (s *Service) GetProfile(handle uintptr, guid *wlanapi.GUID, name string, flags uint32) (unsafe.Pointer, error) {
	if err := s.check(handle); err != nil {
		return nil, err
	}
	s.LastFlags = flags

	iface, err := s.find(guid)
	if err != nil {
		return nil, err
	}
	for _, prof := range iface.Profiles {
		if prof.Name != name {
			continue
		}
		if prof.FetchErr != nil {
			return nil, prof.FetchErr
		}

		units := utf16.Encode([]rune(prof.XML))
		if !prof.UnterminatedXML {
			units = append(units, 0)
		}
		if len(units) == 0 {
			units = []uint16{'x'}
		}
		p := unsafe.Pointer(&units[0])
		s.track(p, units)
		return p, nil
	}
	return nil, fmt.Errorf("wlanapitest: profile %q not found", name)
}

func (s *Service) FreeMemory(p unsafe.Pointer) {
	if _, ok := s.live[p]; !ok {
		s.InvalidFrees++
		return
	}
	delete(s.live, p)
	s.Frees++
}

func (s *Service) check(handle uintptr) error {
	if !s.open || handle != s.handle {
		s.InvalidHandles++
		return ErrInvalidHandle
	}
	return nil
}

func (s *Service) find(guid *wlanapi.GUID) (*Interface, error) {
	for i := range s.Interfaces {
		if s.Interfaces[i].GUID == *guid {
			return &s.Interfaces[i], nil
		}
	}
	return nil, fmt.Errorf("wlanapitest: interface %s not found", guid)
}

// alloc returns zeroed, 8-byte aligned memory of at least size bytes.
func (s *Service) alloc(size uintptr) unsafe.Pointer {
	words := make([]uint64, (size+7)/8)
	p := unsafe.Pointer(&words[0])
	s.track(p, words)
	return p
}

func (s *Service) track(p unsafe.Pointer, backing any) {
	if s.live == nil {
		s.live = make(map[unsafe.Pointer]any)
	}
	s.live[p] = backing
	s.Allocs++
}

func fill(dst []uint16, text string, unterminated bool) {
	if unterminated {
		for i := range dst {
			dst[i] = 'x'
		}
		return
	}
	units := utf16.Encode([]rune(text))
	n := copy(dst[:len(dst)-1], units)
	dst[n] = 0
}
