package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nhdewitt/wlancreds/internal/credential"
)

func strPtr(s string) *string { return &s }

var sample = []credential.Result{
	{Interface: "Wi-Fi", SSID: "HomeNet", AuthType: "open", Cipher: "none"},
	{Interface: "Wi-Fi", SSID: "OfficeNet", AuthType: "WPA2PSK", Cipher: "AES", Key: strPtr("s3cr3t99")},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TABLE", FormatTable, false},
		{" json ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrite_TextOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sample, Options{}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Wi-Fi\tHomeNet\topen\tnone\t-", lines[0])
	assert.Equal(t, "Wi-Fi\tOfficeNet\tWPA2PSK\tAES\ts3cr3t99", lines[1])
}

func TestWrite_TextEscapesLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	results := []credential.Result{{SSID: "evil\nssid", AuthType: "WPA2PSK", Key: strPtr("a\tb")}}
	require.NoError(t, Write(&buf, FormatText, results, Options{}))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "evil ssid")
	assert.Contains(t, buf.String(), "a b")
}

func TestWrite_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, nil, Options{}))
	assert.Empty(t, buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sample, Options{Width: 80}))

	out := buf.String()
	assert.Contains(t, out, "[*] 2 WiFi profile(s)")
	assert.Contains(t, out, strings.Repeat("-", 80))
	assert.Contains(t, out, "INTERFACE")
	assert.Contains(t, out, "s3cr3t99")

	var homeLine string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "HomeNet") {
			homeLine = l
		}
	}
	require.NotEmpty(t, homeLine)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(homeLine), noKey))
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample, Options{}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Nil(t, got[0]["key"])
	assert.Equal(t, "s3cr3t99", got[1]["key"])
	assert.Equal(t, "WPA2PSK", got[1]["auth_type"])
}

func TestWrite_JSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil, Options{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sample, Options{}))

	var got []credential.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Nil(t, got[0].Key)
	require.NotNil(t, got[1].Key)
	assert.Equal(t, "s3cr3t99", *got[1].Key)
	assert.Equal(t, "OfficeNet", got[1].SSID)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sample, Options{}))
}

func TestDetect_NonTerminal(t *testing.T) {
	assert.Equal(t, FormatText, Detect(&bytes.Buffer{}))
	assert.Equal(t, defaultWidth, Width(&bytes.Buffer{}))
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactlyten", 10, "exactlyten"},
		{"this is too long", 10, "this is..."},
		{"ÜñïçødéÜñïçødé", 8, "Üñïçø..."},
	}

	for _, tt := range tests {
		if got := truncStr(tt.in, tt.n); got != tt.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
