package link

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func TestOpenWebsocket(t *testing.T) {
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		io.Copy(ws, ws)
	}))
	defer srv.Close()

	tr, err := Open("ws://"+strings.TrimPrefix(srv.URL, "http://")+"/", time.Second)
	require.NoError(t, err)
	defer tr.Close()

	n, err := tr.Write([]byte{0x42})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	buf := make([]byte, 1)
	n, err = tr.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0x42), buf[0])
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("tcp://localhost:1", time.Second)
	require.Error(t, err)
	_, err = Open("serial:///dev/ttyS0?baud=fast", time.Second)
	require.Error(t, err)
}
