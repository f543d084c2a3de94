package wlanapi_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhdewitt/wlancreds/internal/wlanapi"
	"github.com/nhdewitt/wlancreds/internal/wlanapi/wlanapitest"
)

var (
	guidA = wlanapi.GUIDFromUUID(uuid.MustParse("11111111-1111-1111-1111-111111111111"))
	guidB = wlanapi.GUIDFromUUID(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
	guidC = wlanapi.GUIDFromUUID(uuid.MustParse("33333333-3333-3333-3333-333333333333"))

	errStatus = errors.New("status 0x5")
)

func openFake(t *testing.T, svc *wlanapitest.Service) *wlanapi.Session {
	t.Helper()
	sess, err := wlanapi.Open(svc, wlanapi.ClientVersion2)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sess.Close())
		assert.Zero(t, svc.Outstanding(), "buffers leaked")
		assert.Zero(t, svc.InvalidFrees, "invalid or double frees")
		assert.Equal(t, svc.Allocs, svc.Frees)
	})
	return sess
}

func TestOpen(t *testing.T) {
	svc := &wlanapitest.Service{Negotiated: 1}
	sess, err := wlanapi.Open(svc, wlanapi.ClientVersion2)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), sess.NegotiatedVersion())
	assert.Equal(t, 1, svc.Opens)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close(), "second close")
	assert.Equal(t, 1, svc.Closes)
}

func TestOpen_ServiceUnavailable(t *testing.T) {
	svc := &wlanapitest.Service{OpenErr: errStatus}
	_, err := wlanapi.Open(svc, wlanapi.ClientVersion2)

	require.ErrorIs(t, err, wlanapi.ErrServiceUnavailable)
	assert.ErrorIs(t, err, errStatus)
	assert.Zero(t, svc.Opens)
}

func TestSession_UseAfterClose(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{GUID: guidA, Description: "wlan0"}}}
	sess, err := wlanapi.Open(svc, wlanapi.ClientVersion2)
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	_, _, err = sess.Interfaces()
	assert.ErrorIs(t, err, wlanapi.ErrSessionClosed)
	_, _, err = sess.Profiles(guidA)
	assert.ErrorIs(t, err, wlanapi.ErrSessionClosed)
	_, err = sess.ProfileXML(guidA, "x", true)
	assert.ErrorIs(t, err, wlanapi.ErrSessionClosed)

	assert.Zero(t, svc.InvalidHandles, "closed handle reached the service")
	assert.Zero(t, svc.Allocs)
}

func TestInterfaces(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{
		{GUID: guidA, Description: "Intel(R) Wi-Fi 6 AX201 160MHz", State: wlanapi.InterfaceStateConnected},
		{GUID: guidB, Description: "Realtek RTL8812BU", State: wlanapi.InterfaceStateDisconnected},
	}}
	sess := openFake(t, svc)

	ifaces, skipped, err := sess.Interfaces()
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, ifaces, 2)

	assert.Equal(t, guidA, ifaces[0].GUID)
	assert.Equal(t, "Intel(R) Wi-Fi 6 AX201 160MHz", ifaces[0].Description)
	assert.Equal(t, wlanapi.InterfaceStateConnected, ifaces[0].State)
	assert.Equal(t, guidB, ifaces[1].GUID)
	assert.Equal(t, "Realtek RTL8812BU", ifaces[1].Description)

	assert.Equal(t, 1, svc.Allocs)
	assert.Equal(t, 1, svc.Frees)
}

func TestInterfaces_Empty(t *testing.T) {
	svc := &wlanapitest.Service{}
	sess := openFake(t, svc)

	ifaces, skipped, err := sess.Interfaces()
	require.NoError(t, err)
	assert.Empty(t, ifaces)
	assert.Empty(t, skipped)
	assert.Equal(t, 1, svc.Frees)
}

func TestInterfaces_UnterminatedDescription(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{
		{GUID: guidA, Description: "first"},
		{GUID: guidB, UnterminatedDescription: true},
		{GUID: guidC, Description: "third"},
	}}
	sess := openFake(t, svc)

	ifaces, skipped, err := sess.Interfaces()
	require.NoError(t, err)
	require.Len(t, ifaces, 2)
	assert.Equal(t, "first", ifaces[0].Description)
	assert.Equal(t, "third", ifaces[1].Description)

	require.Len(t, skipped, 1)
	var rec *wlanapi.RecordError
	require.ErrorAs(t, skipped[0], &rec)
	assert.Equal(t, 1, rec.Index)
	assert.ErrorIs(t, skipped[0], wlanapi.ErrUnterminated)

	assert.Equal(t, 1, svc.Frees, "one release regardless of skipped records")
}

func TestInterfaces_StatusFailure(t *testing.T) {
	svc := &wlanapitest.Service{EnumErr: errStatus}
	sess := openFake(t, svc)

	_, _, err := sess.Interfaces()
	require.ErrorIs(t, err, wlanapi.ErrEnumerationFailed)
	assert.ErrorIs(t, err, errStatus)
	assert.Zero(t, svc.Allocs)
}

func TestInterfaces_NilBufferOnSuccess(t *testing.T) {
	svc := &wlanapitest.Service{NilEnum: true}
	sess := openFake(t, svc)

	_, _, err := sess.Interfaces()
	require.ErrorIs(t, err, wlanapi.ErrEnumerationFailed)
	assert.ErrorIs(t, err, wlanapi.ErrNilBuffer)
	assert.Zero(t, svc.Frees, "nothing to release")
}

func TestProfiles(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{
		GUID: guidA,
		Profiles: []wlanapitest.Profile{
			{Name: "HomeNet", Flags: wlanapi.ProfileUser},
			{Name: "OfficeNet", Flags: wlanapi.ProfileGroupPolicy},
			{Name: "Café Ünïcode"},
		},
	}}}
	sess := openFake(t, svc)

	profiles, skipped, err := sess.Profiles(guidA)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, profiles, 3)

	assert.Equal(t, "HomeNet", profiles[0].Name)
	assert.True(t, profiles[0].PerUser())
	assert.Equal(t, "OfficeNet", profiles[1].Name)
	assert.True(t, profiles[1].GroupPolicy())
	assert.Equal(t, "Café Ünïcode", profiles[2].Name)
}

func TestProfiles_Failures(t *testing.T) {
	tests := []struct {
		name    string
		iface   wlanapitest.Interface
		wantErr error
		allocs  int
	}{
		{"Status", wlanapitest.Interface{GUID: guidA, ListErr: errStatus}, errStatus, 0},
		{"Nil Buffer", wlanapitest.Interface{GUID: guidA, NilList: true}, wlanapi.ErrNilBuffer, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{tt.iface}}
			sess := openFake(t, svc)

			_, _, err := sess.Profiles(guidA)
			require.ErrorIs(t, err, wlanapi.ErrProfileListFailed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.allocs, svc.Allocs)
		})
	}
}

func TestProfiles_UnterminatedName(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{
		GUID: guidA,
		Profiles: []wlanapitest.Profile{
			{Name: "Good"},
			{UnterminatedName: true},
		},
	}}}
	sess := openFake(t, svc)

	profiles, skipped, err := sess.Profiles(guidA)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Good", profiles[0].Name)

	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], wlanapi.ErrUnterminated)
	assert.Contains(t, skipped[0].Error(), "profile name")
}

func TestProfileXML(t *testing.T) {
	doc := wlanapitest.ProfileXML("OfficeNet", "WPA2PSK", "AES", "s3cr3t99")
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{
		GUID:     guidA,
		Profiles: []wlanapitest.Profile{{Name: "OfficeNet", XML: doc}},
	}}}
	sess := openFake(t, svc)

	got, err := sess.ProfileXML(guidA, "OfficeNet", true)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.Equal(t, uint32(wlanapi.ProfileGetPlaintextKey), svc.LastFlags&wlanapi.ProfileGetPlaintextKey)

	_, err = sess.ProfileXML(guidA, "OfficeNet", false)
	require.NoError(t, err)
	assert.Zero(t, svc.LastFlags&wlanapi.ProfileGetPlaintextKey)

	assert.Equal(t, 2, svc.Allocs)
	assert.Equal(t, 2, svc.Frees)
}

func TestProfileXML_StatusFailure(t *testing.T) {
	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{
		GUID:     guidA,
		Profiles: []wlanapitest.Profile{{Name: "Locked", FetchErr: errStatus}},
	}}}
	sess := openFake(t, svc)

	_, err := sess.ProfileXML(guidA, "Locked", true)
	require.ErrorIs(t, err, wlanapi.ErrProfileFetchFailed)
	assert.ErrorIs(t, err, errStatus)
	assert.Zero(t, svc.Allocs)
}

func TestProfileXML_UnterminatedIsReleased(t *testing.T) {
	doc := "<WLANProfile></WLANProfile>"
	restore := wlanapi.SetMaxProfileXMLUnits(len(doc))
	defer restore()

	svc := &wlanapitest.Service{Interfaces: []wlanapitest.Interface{{
		GUID:     guidA,
		Profiles: []wlanapitest.Profile{{Name: "Broken", XML: doc, UnterminatedXML: true}},
	}}}
	sess := openFake(t, svc)

	_, err := sess.ProfileXML(guidA, "Broken", true)
	require.ErrorIs(t, err, wlanapi.ErrProfileFetchFailed)
	assert.ErrorIs(t, err, wlanapi.ErrUnterminated)
	assert.Equal(t, 1, svc.Allocs)
	assert.Equal(t, 1, svc.Frees, "buffer released on conversion failure")
}
