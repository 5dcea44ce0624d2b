package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUDPSink starts a local UDP listener and returns the client plus a
// function that reads the next emitted line.
func newUDPSink(t *testing.T, prefix string) (*Client, func() string) {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	client, err := NewClient(Config{
		Enabled: true,
		Address: pc.LocalAddr().String(),
		Prefix:  prefix,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	read := func() string {
		buf := make([]byte, 1024)
		require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
		n, _, err := pc.ReadFrom(buf)
		require.NoError(t, err)
		return string(buf[:n])
	}
	return client, read
}

func TestClient_Count(t *testing.T) {
	client, read := newUDPSink(t, "jobdesk")

	client.Count("session.op", 1, nil)
	assert.Equal(t, "jobdesk.session.op:1|c", read())
}

func TestClient_CountWithTags(t *testing.T) {
	client, read := newUDPSink(t, "jobdesk")

	client.Count("session.op", 1, map[string]string{
		"op":      "login",
		"outcome": "success",
	})
	// Tags are emitted in sorted key order.
	assert.Equal(t, "jobdesk.session.op:1|c|#op:login,outcome:success", read())
}

func TestClient_Timing(t *testing.T) {
	client, read := newUDPSink(t, "jobdesk")

	client.Timing("session.boot", 1500*time.Millisecond, nil)
	assert.Equal(t, "jobdesk.session.boot:1500|ms", read())
}

func TestClient_NoPrefix(t *testing.T) {
	client, read := newUDPSink(t, "")

	client.Count("session.op", 2, nil)
	assert.Equal(t, "session.op:2|c", read())
}

func TestClient_SanitizesMetricName(t *testing.T) {
	client, read := newUDPSink(t, "jobdesk")

	client.Count(" session/boot time ", 1, nil)
	assert.Equal(t, "jobdesk.session_boot_time:1|c", read())
}

func TestClient_DisabledIsSilent(t *testing.T) {
	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)

	// Must not panic, must not dial.
	client.Count("session.op", 1, nil)
	client.Timing("session.boot", time.Second, nil)
	require.NoError(t, client.Close())
}

func TestClient_NilReceiverIsSilent(t *testing.T) {
	var client *Client
	client.Count("session.op", 1, nil)
	client.Timing("session.boot", time.Second, nil)
	require.NoError(t, client.Close())
}

func TestClient_EmptyAddressDisables(t *testing.T) {
	client, err := NewClient(Config{Enabled: true, Address: "  "})
	require.NoError(t, err)

	client.Count("session.op", 1, nil)
	require.NoError(t, client.Close())
}

func TestClient_CloseStopsEmission(t *testing.T) {
	client, _ := newUDPSink(t, "jobdesk")
	require.NoError(t, client.Close())

	// Emission after close must be a no-op, not a panic.
	client.Count("session.op", 1, nil)
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "", formatTags(nil))
	assert.Equal(t, "", formatTags(map[string]string{}))
	assert.Equal(t, "", formatTags(map[string]string{"  ": "x"}))
	assert.Equal(t, "|#a:1,b:2", formatTags(map[string]string{"b": "2", "a": "1"}))
}
