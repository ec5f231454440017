package realtime

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
)

const handshakeGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// ErrConnClosed se devuelve cuando el cliente cierra la conexión.
var ErrConnClosed = errors.New("websocket: conexión cerrada")

const (
	opText  = 0x1
	opClose = 0x8
	opPing  = 0x9
	opPong  = 0xA
)

// Conn es una conexión WebSocket mínima con frames de texto; suficiente
// para repartir mensajes de canal sin dependencias extra. Las escrituras
// están serializadas porque el hub difunde desde varias goroutines.
type Conn struct {
	conn net.Conn
	wmu  sync.Mutex
}

// Upgrade realiza el handshake HTTP/1.1 y toma el control del socket.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	key := r.Header.Get("Sec-WebSocket-Key")
	if key == "" {
		return nil, errors.New("websocket: falta Sec-WebSocket-Key")
	}
	hj, ok := w.(http.Hijacker)
	if !ok {
		return nil, errors.New("websocket: el servidor no soporta hijacking")
	}
	rawConn, buf, err := hj.Hijack()
	if err != nil {
		return nil, err
	}

	sum := sha1.Sum([]byte(key + handshakeGUID))
	accept := base64.StdEncoding.EncodeToString(sum[:])
	_, err = fmt.Fprintf(buf, "HTTP/1.1 101 Switching Protocols\r\n"+
		"Upgrade: websocket\r\n"+
		"Connection: Upgrade\r\n"+
		"Sec-WebSocket-Accept: %s\r\n\r\n", accept)
	if err == nil {
		err = buf.Flush()
	}
	if err != nil {
		rawConn.Close()
		return nil, err
	}
	return &Conn{conn: rawConn}, nil
}

// ReadJSON bloquea hasta el siguiente frame de texto y lo decodifica en v.
// Responde a los pings por su cuenta.
func (c *Conn) ReadJSON(v interface{}) error {
	for {
		opcode, payload, err := c.readFrame()
		if err != nil {
			return err
		}
		switch opcode {
		case opClose:
			return ErrConnClosed
		case opPing:
			if err := c.writeFrame(opPong, payload); err != nil {
				return err
			}
		case opText:
			if len(payload) == 0 {
				return nil
			}
			return json.Unmarshal(payload, v)
		default:
			return fmt.Errorf("websocket: opcode %#x no soportado", opcode)
		}
	}
}

func (c *Conn) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.writeFrame(opText, data)
}

func (c *Conn) Close() error {
	_ = c.writeFrame(opClose, nil)
	return c.conn.Close()
}

func (c *Conn) readFrame() (byte, []byte, error) {
	var header [2]byte
	if _, err := io.ReadFull(c.conn, header[:]); err != nil {
		return 0, nil, err
	}
	if header[0]&0x80 == 0 {
		return 0, nil, errors.New("websocket: frames fragmentados no soportados")
	}
	opcode := header[0] & 0x0F

	length := uint64(header[1] & 0x7F)
	switch length {
	case 126:
		var ext [2]byte
		if _, err := io.ReadFull(c.conn, ext[:]); err != nil {
			return 0, nil, err
		}
		length = uint64(binary.BigEndian.Uint16(ext[:]))
	case 127:
		var ext [8]byte
		if _, err := io.ReadFull(c.conn, ext[:]); err != nil {
			return 0, nil, err
		}
		length = binary.BigEndian.Uint64(ext[:])
	}

	masked := header[1]&0x80 != 0
	var maskKey [4]byte
	if masked {
		if _, err := io.ReadFull(c.conn, maskKey[:]); err != nil {
			return 0, nil, err
		}
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return 0, nil, err
	}
	if masked {
		for i := range payload {
			payload[i] ^= maskKey[i%4]
		}
	}
	return opcode, payload, nil
}

func (c *Conn) writeFrame(opcode byte, payload []byte) error {
	header := make([]byte, 2, 10)
	header[0] = 0x80 | opcode

	switch n := len(payload); {
	case n < 126:
		header[1] = byte(n)
	case n <= 0xFFFF:
		header[1] = 126
		header = binary.BigEndian.AppendUint16(header, uint16(n))
	default:
		header[1] = 127
		header = binary.BigEndian.AppendUint64(header, uint64(n))
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := c.conn.Write(header); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := c.conn.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
