package wlanapi

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// maxProfileXMLUnits bounds the scan for the terminator of a profile document.
var maxProfileXMLUnits = 1 << 20

// viewOf turns a (first element, count) pair from service memory into a slice.
// The pair is validated together: a nil pointer is only accepted with a zero
// count, and the count must lie in [0, MaxListItems].
func viewOf[T any, N constraints.Integer](first *T, n N) ([]T, error) {
	if n < 0 || uint64(n) > MaxListItems {
		return nil, fmt.Errorf("%w: %d items", ErrTooManyItems, n)
	}
	if first == nil {
		if n == 0 {
			return nil, nil
		}
		return nil, ErrNilBuffer
	}
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice(first, int(n)), nil
}

func interfaceView(p unsafe.Pointer) ([]InterfaceInfo, error) {
	if p == nil {
		return nil, ErrNilBuffer
	}
	list := (*InterfaceInfoList)(p)
	return viewOf(&list.InterfaceInfo[0], list.NumberOfItems)
}

func profileView(p unsafe.Pointer) ([]ProfileInfo, error) {
	if p == nil {
		return nil, ErrNilBuffer
	}
	list := (*ProfileInfoList)(p)
	return viewOf(&list.ProfileInfo[0], list.NumberOfItems)
}

// decodeUTF16 decodes a fixed-width, NUL-terminated field. A field with no
// terminator inside its bounds is rejected instead of truncated.
func decodeUTF16(w []uint16) (string, error) {
	for i, c := range w {
		if c == 0 {
			return string(utf16.Decode(w[:i])), nil
		}
	}
	return "", ErrUnterminated
}

// stringAt decodes a NUL-terminated UTF-16 string of unknown length,
// reading at most limit code units.
func stringAt(p unsafe.Pointer, limit int) (string, error) {
	if p == nil {
		return "", ErrNilBuffer
	}
	for n := 0; n < limit; n++ {
		if *(*uint16)(unsafe.Add(p, n*2)) == 0 {
			return string(utf16.Decode(unsafe.Slice((*uint16)(p), n))), nil
		}
	}
	return "", fmt.Errorf("%w: no terminator in %d units", ErrUnterminated, limit)
}
