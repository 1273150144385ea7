package connectionhub

import (
	"context"
	"fmt"
	"testing"

	wsmodels "mock-interview-backend/models/ws"

	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run(`messages for offline user are kept check`, func(t *testing.T) {
		hub := NewHub().(*impl)
		require.False(t, hub.IsConnected("user"))

		for n := 0; n < pendingLimit+5; n++ {
			hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user", Code: wsmodels.TurnRecordedCode, Msg: fmt.Sprint(n)})
		}
		pending := hub.pending["user"]
		require.Len(t, pending, pendingLimit)
		require.Equal(t, "5", pending[0].Msg)
		require.Empty(t, hub.pending["other"])
	})

	t.Run(`delete unknown client check`, func(t *testing.T) {
		hub := NewHub()
		hub.DeleteClient("nobody")
		hub.SendClose("nobody")
		require.False(t, hub.IsConnected("nobody"))
	})

	t.Run(`full send buffer drops event check`, func(t *testing.T) {
		hub := NewHub().(*impl)
		ctx, cancel := context.WithCancel(context.Background())
		// без отправляющей горутины буфер не разгружается
		sess := clientSession{ctx: ctx, stop: cancel, sendCh: make(chan wsmodels.ServerMessage, sendBufferSize)}
		hub.clients["user"] = sess

		for n := 0; n < sendBufferSize+3; n++ {
			hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user", Code: wsmodels.TurnRecordedCode, Msg: fmt.Sprint(n)})
		}
		require.Len(t, sess.sendCh, sendBufferSize)
		require.Empty(t, hub.pending["user"])

		cancel()
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user", Code: wsmodels.ReportReadyCode})
		require.Len(t, hub.pending["user"], 1)
		require.Equal(t, wsmodels.ReportReadyCode, hub.pending["user"][0].Code)
	})
}
