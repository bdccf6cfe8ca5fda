package http

import (
	"encoding/json"
	"net"
	nethttp "net/http"
	"testing"

	fws "github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/domain"
)

// startServer binds the app to an ephemeral port so websocket clients can
// dial it for real.
func startServer(t *testing.T, env *testEnv) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = env.app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = env.app.Shutdown()
	})

	return ln.Addr().String()
}

func dialAssistant(t *testing.T, addr, query string, header nethttp.Header) *fws.Conn {
	t.Helper()

	url := "ws://" + addr + "/api/v1/ws/assistant" + query
	conn, resp, err := fws.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func assertEcho(t *testing.T, conn *fws.Conn, message string) {
	t.Helper()

	require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(message)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply struct {
		From    string `json:"from"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, "assistant", reply.From)
	assert.Equal(t, message, reply.Message)
}

func TestAssistantChannel(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "active@example.com", "correct-horse", domain.RoleUser, true)
	tokens := env.login(t, "active@example.com", "correct-horse")
	addr := startServer(t, env)

	t.Run("no token closes the socket with 4001 before any exchange", func(t *testing.T) {
		conn := dialAssistant(t, addr, "", nil)

		_, _, err := conn.ReadMessage()
		var closeErr *fws.CloseError
		require.ErrorAs(t, err, &closeErr)
		assert.Equal(t, auth.WSCloseUnauthorized, closeErr.Code)
	})

	t.Run("garbage token closes the socket with 4001", func(t *testing.T) {
		conn := dialAssistant(t, addr, "?token=garbage", nil)

		_, _, err := conn.ReadMessage()
		var closeErr *fws.CloseError
		require.ErrorAs(t, err, &closeErr)
		assert.Equal(t, auth.WSCloseUnauthorized, closeErr.Code)
	})

	t.Run("query token opens the channel", func(t *testing.T) {
		conn := dialAssistant(t, addr, "?token="+tokens.AccessToken, nil)
		assertEcho(t, conn, "hello")
	})

	t.Run("cookie token opens the channel", func(t *testing.T) {
		header := nethttp.Header{}
		header.Set("Cookie", "access_token="+tokens.AccessToken)
		conn := dialAssistant(t, addr, "", header)
		assertEcho(t, conn, "hello again")
	})
}
