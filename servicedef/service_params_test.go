package servicedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchArgs(t *testing.T) {
	assert.Equal(t, []string{"--ip", "127.0.0.1", "--port", "8888"}, LaunchArgs("127.0.0.1", 8888))
}

func TestReadyMatcherRequiresTheExactAddress(t *testing.T) {
	matches := ReadyMatcher("127.0.0.1:8888")

	assert.True(t, matches("listening on http://127.0.0.1:8888"))
	assert.True(t, matches("Listening on 127.0.0.1:8888"))
	assert.True(t, matches("2024-01-01T00:00:00Z INFO listening on http://127.0.0.1:8888 (midi ready)"))

	// A generic announcement, or one for a different address, must not count:
	// it could have come from a stale process bound somewhere else.
	assert.False(t, matches("Listening"))
	assert.False(t, matches("listening on http://127.0.0.1:9999"))
	assert.False(t, matches("listening on http://localhost:8888"))
}

func TestParsePortsResponse(t *testing.T) {
	body := []byte(`{"ports":[{"name":"Midi Through Port-0","client":"Midi Through","number":0},{"name":"USB Keyboard"}]}`)
	resp, ok := ParsePortsResponse(body)
	require.True(t, ok)
	require.Equal(t, 2, len(resp.Ports))
	assert.Equal(t, "Midi Through Port-0", resp.Ports[0].Name)
	assert.Equal(t, "Midi Through", resp.Ports[0].Client.StringValue())
	assert.True(t, resp.Ports[0].Number.IsDefined())
	assert.Equal(t, 0, resp.Ports[0].Number.IntValue())

	// Optional fields stay undefined when omitted.
	assert.Equal(t, "USB Keyboard", resp.Ports[1].Name)
	assert.False(t, resp.Ports[1].Client.IsDefined())
	assert.False(t, resp.Ports[1].Number.IsDefined())
}

func TestParsePortsResponseRejectsNonJSONBodies(t *testing.T) {
	_, ok := ParsePortsResponse([]byte("<ol><li>Midi Through Port-0</li></ol>"))
	assert.False(t, ok)
}
