package realtime

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panal/internal/models"
)

func newPipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return &Conn{conn: server}, client
}

func TestChannelHub_SubscribeUnsubscribe(t *testing.T) {
	t.Parallel()
	hub := NewChannelHub()
	conn, client := newPipeConn(t)
	// net.Pipe es síncrono: hay que drenar el extremo cliente para que el
	// frame de cierre de Unsubscribe no bloquee.
	go io.Copy(io.Discard, client)

	hub.Subscribe(7, conn)
	assert.Equal(t, 1, hub.Count(7))
	assert.Equal(t, 0, hub.Count(8))

	hub.Unsubscribe(7, conn)
	assert.Equal(t, 0, hub.Count(7))
}

func TestChannelHub_BroadcastDelivers(t *testing.T) {
	t.Parallel()
	hub := NewChannelHub()
	conn, client := newPipeConn(t)
	hub.Subscribe(7, conn)

	const content = "hola colmena"
	got := make(chan []byte, 1)
	go func() {
		var data []byte
		buf := make([]byte, 1024)
		for len(data) < len(content) {
			n, err := client.Read(buf)
			if err != nil {
				break
			}
			data = append(data, buf[:n]...)
		}
		got <- data
	}()

	hub.Broadcast(&models.ChannelMessage{ChannelID: 7, AuthorID: 1, Content: content})

	select {
	case frame := <-got:
		assert.Contains(t, string(frame), content)
	case <-time.After(time.Second):
		t.Fatal("el mensaje nunca llegó al suscriptor")
	}
	assert.Equal(t, 1, hub.Count(7))
}

func TestChannelHub_BroadcastPrunesDeadConns(t *testing.T) {
	t.Parallel()
	hub := NewChannelHub()

	server, client := net.Pipe()
	conn := &Conn{conn: server}
	hub.Subscribe(7, conn)
	require.Equal(t, 1, hub.Count(7))

	// cerrar ambos extremos hace fallar la escritura del reparto
	server.Close()
	client.Close()

	hub.Broadcast(&models.ChannelMessage{ChannelID: 7, AuthorID: 1, Content: "fantasma"})
	assert.Equal(t, 0, hub.Count(7))
}
