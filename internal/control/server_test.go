package control

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/cloud-jukebox/internal/config"
)

func TestServerStopsWhenSessionEnds(t *testing.T) {
	t.Parallel()

	controller := newFakeController()
	server := NewServer(config.ControlConfig{Enabled: true, Port: 0}, controller, NewHandler(controller, nil, nil))

	require.NoError(t, server.Start(t.Context()))

	addresses := server.BoundAddresses()
	require.Len(t, addresses, 1)

	url := "http://" + addresses[0] + "/songAdvance/"

	resp, err := http.Get(url) //nolint:noctx // Plain request against a local test server.
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "<HTML><BODY>advanced to next song</BODY></HTML>", string(body))
	assert.Equal(t, int32(1), controller.advanced.Load())

	close(controller.done)

	require.Eventually(t, func() bool {
		resp, err = http.Get(url) //nolint:noctx // See above.
		if err == nil {
			_ = resp.Body.Close()
		}

		return err != nil
	}, 5*time.Second, 10*time.Millisecond)

	// Stopping again is a no-op.
	server.Stop(t.Context())
}

func TestServerAddresses(t *testing.T) {
	t.Parallel()

	server := NewServer(config.ControlConfig{Port: 5309}, newFakeController(), NewHandler(newFakeController(), nil, nil))
	assert.Equal(t, []string{"127.0.0.1:5309"}, server.Addresses(t.Context()))

	server = NewServer(config.ControlConfig{Port: 5309, BindLAN: true}, newFakeController(), NewHandler(newFakeController(), nil, nil))
	addresses := server.Addresses(t.Context())
	require.NotEmpty(t, addresses)
	assert.Equal(t, "127.0.0.1:5309", addresses[0])
	assert.LessOrEqual(t, len(addresses), 2)
}
