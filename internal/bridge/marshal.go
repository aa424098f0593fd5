package bridge

import (
	"bytes"
	"sync"

	"github.com/tinylib/msgp/msgp"
)

var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// Marshal serializes a *Request or *Response to msgpack.
func Marshal(v any) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	writer := msgp.NewWriter(buf)
	switch msg := v.(type) {
	case *Request:
		if err := msg.EncodeMsg(writer); err != nil {
			return nil, err
		}
	case *Response:
		if err := msg.EncodeMsg(writer); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownMessageType
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}

	// The buffer goes back to the pool.
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Unmarshal decodes msgpack data into a *Request or *Response.
func Unmarshal(data []byte, v any) error {
	reader := msgp.NewReader(bytes.NewReader(data))
	reader.SetMaxElements(MaxFrameSize)
	reader.SetMaxStringLength(MaxFrameSize)
	switch msg := v.(type) {
	case *Request:
		return msg.DecodeMsg(reader)
	case *Response:
		return msg.DecodeMsg(reader)
	default:
		return ErrUnknownMessageType
	}
}
