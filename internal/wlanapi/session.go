package wlanapi

import (
	"fmt"
)

// Session is an open client handle to the configuration service. It is not
// safe for concurrent use; one owner opens it, uses it and closes it.
type Session struct {
	svc        Service
	handle     uintptr
	negotiated uint32
	closed     bool
}

// Open negotiates clientVersion with the service and returns a session.
func Open(svc Service, clientVersion uint32) (*Session, error) {
	handle, negotiated, err := svc.OpenHandle(clientVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return &Session{
		svc:        svc,
		handle:     handle,
		negotiated: negotiated,
	}, nil
}

// NegotiatedVersion is the client version agreed on by the service.
func (s *Session) NegotiatedVersion() uint32 {
	return s.negotiated
}

// Close releases the handle. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.svc.CloseHandle(s.handle)
}

// Interfaces lists the wireless adapters in service order. Entries whose
// description cannot be decoded are skipped and reported as *RecordError.
func (s *Session) Interfaces() ([]Interface, []error, error) {
	if s.closed {
		return nil, nil, ErrSessionClosed
	}

	p, err := s.svc.EnumInterfaces(s.handle)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEnumerationFailed, err)
	}
	buf := acquire(s.svc, p)
	defer buf.Release()

	items, err := interfaceView(buf.Pointer())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEnumerationFailed, err)
	}

	var (
		out     = make([]Interface, 0, len(items))
		skipped []error
	)
	for i := range items {
		desc, err := decodeUTF16(items[i].InterfaceDescription[:])
		if err != nil {
			skipped = append(skipped, &RecordError{Index: i, Field: "description", Err: err})
			continue
		}
		out = append(out, Interface{
			GUID:        items[i].InterfaceGUID,
			Description: desc,
			State:       InterfaceState(items[i].State),
		})
	}

	return out, skipped, nil
}

// Profiles lists the saved profiles of one interface in service order.
// Entries whose name cannot be decoded are skipped and reported.
func (s *Session) Profiles(iface GUID) ([]Profile, []error, error) {
	if s.closed {
		return nil, nil, ErrSessionClosed
	}

	p, err := s.svc.GetProfileList(s.handle, &iface)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrProfileListFailed, iface, err)
	}
	buf := acquire(s.svc, p)
	defer buf.Release()

	items, err := profileView(buf.Pointer())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrProfileListFailed, iface, err)
	}

	var (
		out     = make([]Profile, 0, len(items))
		skipped []error
	)
	for i := range items {
		name, err := decodeUTF16(items[i].ProfileName[:])
		if err != nil {
			skipped = append(skipped, &RecordError{Index: i, Field: "profile name", Err: err})
			continue
		}
		out = append(out, Profile{Name: name, Flags: items[i].Flags})
	}

	return out, skipped, nil
}

// ProfileXML returns the profile document for name on iface. With
// plaintextKey set the service is asked to include the key in clear; callers
// without the required rights still get a document, just without it.
func (s *Session) ProfileXML(iface GUID, name string, plaintextKey bool) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}

	var flags uint32
	if plaintextKey {
		flags |= ProfileGetPlaintextKey
	}

	p, err := s.svc.GetProfile(s.handle, &iface, name, flags)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrProfileFetchFailed, name, err)
	}
	buf := acquire(s.svc, p)
	defer buf.Release()

	doc, err := stringAt(buf.Pointer(), maxProfileXMLUnits)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrProfileFetchFailed, name, err)
	}
	return doc, nil
}
