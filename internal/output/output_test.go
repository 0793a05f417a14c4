package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func sampleStatus() Status {
	valid := true
	return Status{ClientIdentifier: "cid", SignedIn: true, TokenValid: &valid, PendingPinID: 42}
}

func TestWriteStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatus(&buf, FormatText, sampleStatus()))

	out := buf.String()
	assert.Contains(t, out, "Client identifier: cid")
	assert.Contains(t, out, "Signed in:         yes")
	assert.Contains(t, out, "Token valid:       yes")
	assert.Contains(t, out, "Pending pin:       42")
	assert.NotContains(t, out, "Probe error")
}

func TestWriteStatus_TextMinimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatus(&buf, FormatText, Status{ClientIdentifier: "cid"}))
	assert.Equal(t, "Client identifier: cid\nSigned in:         no\n", buf.String())
}

func TestWriteStatus_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatus(&buf, FormatJSON, sampleStatus()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "cid", got["client_identifier"])
	assert.Equal(t, true, got["signed_in"])
	assert.Equal(t, true, got["token_valid"])
	assert.Equal(t, float64(42), got["pending_pin_id"])
	assert.NotContains(t, got, "probe_error")
}

func TestWriteStatus_YAML(t *testing.T) {
	var buf bytes.Buffer
	s := Status{ClientIdentifier: "cid", ProbeError: "bad response 503"}
	require.NoError(t, WriteStatus(&buf, FormatYAML, s))

	var got Status
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, s, got)
}
