package bridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/tinylib/msgp/msgp"
)

// MaxFrameSize is the largest encoded message a peer may send. Array and
// string headers are checked against it before anything is allocated.
const MaxFrameSize = 64 * 1024

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrLengthTooLarge     = fmt.Errorf("length exceeds %d bytes", MaxFrameSize)
)

// EncodeMsg implements msgp.Encodable. Unset optional fields are omitted.
func (z *Request) EncodeMsg(en *msgp.Writer) error {
	fields := uint32(3)
	for _, set := range []bool{z.Begin != nil, z.End != nil, z.Count != nil, z.N != nil, z.Items != nil, z.Weights != nil} {
		if set {
			fields++
		}
	}
	if err := en.WriteMapHeader(fields); err != nil {
		return err
	}
	if err := writeStringField(en, "id", z.ID); err != nil {
		return err
	}
	if err := writeStringField(en, "op", string(z.Op)); err != nil {
		return err
	}
	if err := writeStringField(en, "randomness", z.Randomness); err != nil {
		return err
	}
	for _, f := range []struct {
		key string
		val any
	}{{"begin", z.Begin}, {"end", z.End}, {"count", z.Count}, {"n", z.N}} {
		if f.val == nil {
			continue
		}
		if err := en.WriteString(f.key); err != nil {
			return err
		}
		if err := en.WriteIntf(f.val); err != nil {
			return msgp.WrapError(err, f.key)
		}
	}
	if z.Items != nil {
		if err := en.WriteString("items"); err != nil {
			return err
		}
		if err := writeStrings(en, z.Items); err != nil {
			return msgp.WrapError(err, "items")
		}
	}
	if z.Weights != nil {
		if err := en.WriteString("weights"); err != nil {
			return err
		}
		if err := en.WriteArrayHeader(uint32(len(z.Weights))); err != nil {
			return err
		}
		for i, w := range z.Weights {
			if err := en.WriteIntf(w); err != nil {
				return msgp.WrapError(err, "weights", i)
			}
		}
	}
	return nil
}

// DecodeMsg implements msgp.Decodable. Unknown keys are skipped.
func (z *Request) DecodeMsg(dc *msgp.Reader) error {
	n, err := dc.ReadMapHeader()
	if err != nil {
		return err
	}
	*z = Request{}
	for ; n > 0; n-- {
		key, err := dc.ReadMapKeyPtr()
		if err != nil {
			return err
		}
		switch msgp.UnsafeString(key) {
		case "id":
			z.ID, err = readString(dc)
		case "op":
			var s string
			s, err = readString(dc)
			z.Op = Op(s)
		case "randomness":
			z.Randomness, err = readString(dc)
		case "begin":
			z.Begin, err = readScalar(dc)
		case "end":
			z.End, err = readScalar(dc)
		case "count":
			z.Count, err = readScalar(dc)
		case "n":
			z.N, err = readScalar(dc)
		case "items":
			z.Items, err = readStrings(dc)
		case "weights":
			z.Weights, err = readScalars(dc)
		default:
			err = dc.Skip()
		}
		if err != nil {
			return msgp.WrapError(err, string(key))
		}
	}
	return nil
}

// EncodeMsg implements msgp.Encodable.
func (z *Response) EncodeMsg(en *msgp.Writer) error {
	fields := uint32(1)
	if z.Result != nil {
		fields++
	}
	if z.Error != "" {
		fields++
	}
	if err := en.WriteMapHeader(fields); err != nil {
		return err
	}
	if err := writeStringField(en, "id", z.ID); err != nil {
		return err
	}
	if z.Result != nil {
		if err := en.WriteString("result"); err != nil {
			return err
		}
		if err := en.WriteIntf(z.Result); err != nil {
			return msgp.WrapError(err, "result")
		}
	}
	if z.Error != "" {
		if err := writeStringField(en, "error", z.Error); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsg implements msgp.Decodable.
func (z *Response) DecodeMsg(dc *msgp.Reader) error {
	n, err := dc.ReadMapHeader()
	if err != nil {
		return err
	}
	*z = Response{}
	for ; n > 0; n-- {
		key, err := dc.ReadMapKeyPtr()
		if err != nil {
			return err
		}
		switch msgp.UnsafeString(key) {
		case "id":
			z.ID, err = readString(dc)
		case "result":
			z.Result, err = readResult(dc)
		case "error":
			z.Error, err = readString(dc)
		default:
			err = dc.Skip()
		}
		if err != nil {
			return msgp.WrapError(err, string(key))
		}
	}
	return nil
}

func writeStringField(en *msgp.Writer, key, val string) error {
	if err := en.WriteString(key); err != nil {
		return err
	}
	return en.WriteString(val)
}

func writeStrings(en *msgp.Writer, ss []string) error {
	if err := en.WriteArrayHeader(uint32(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := en.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// readLength reads an array header and rejects counts that cannot fit in
// a frame; every element takes at least one byte.
func readLength(dc *msgp.Reader) (int, error) {
	sz, err := dc.ReadArrayHeader()
	if err != nil {
		return 0, err
	}
	if sz > MaxFrameSize {
		return 0, ErrLengthTooLarge
	}
	return int(sz), nil
}

func readString(dc *msgp.Reader) (string, error) {
	sz, err := dc.ReadStringHeader()
	if err != nil {
		return "", err
	}
	if sz > MaxFrameSize {
		return "", ErrLengthTooLarge
	}
	buf := make([]byte, sz)
	if _, err := io.ReadFull(dc.R, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readStrings(dc *msgp.Reader) ([]string, error) {
	sz, err := readLength(dc)
	if err != nil {
		return nil, err
	}
	out := make([]string, sz)
	for i := range out {
		if out[i], err = readString(dc); err != nil {
			return nil, msgp.WrapError(err, i)
		}
	}
	return out, nil
}

// readScalar reads a number, string, bool or nil. Containers are skipped
// and reported as nil, which the bridge rejects as "not of type number".
func readScalar(dc *msgp.Reader) (any, error) {
	t, err := dc.NextType()
	if err != nil {
		return nil, err
	}
	switch t {
	case msgp.IntType:
		return dc.ReadInt64()
	case msgp.UintType:
		return dc.ReadUint64()
	case msgp.Float64Type:
		return dc.ReadFloat64()
	case msgp.Float32Type:
		return dc.ReadFloat32()
	case msgp.BoolType:
		return dc.ReadBool()
	case msgp.StrType:
		return readString(dc)
	case msgp.NilType:
		return nil, dc.ReadNil()
	default:
		return nil, dc.Skip()
	}
}

func readScalars(dc *msgp.Reader) ([]any, error) {
	sz, err := readLength(dc)
	if err != nil {
		return nil, err
	}
	out := make([]any, sz)
	for i := range out {
		if out[i], err = readScalar(dc); err != nil {
			return nil, msgp.WrapError(err, i)
		}
	}
	return out, nil
}

// readResult reads the result of a Response: a string list or a scalar.
func readResult(dc *msgp.Reader) (any, error) {
	t, err := dc.NextType()
	if err != nil {
		return nil, err
	}
	if t == msgp.ArrayType {
		return readStrings(dc)
	}
	v, err := readScalar(dc)
	if err != nil {
		return nil, err
	}
	return normalizeResult(v), nil
}
