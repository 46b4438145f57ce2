package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// every chunk starts with a 4 byte id and a big endian uint32 length
const headerLen = 8

var ErrTruncated = errors.New("truncated chunk")

type Raw struct {
	ID   string
	Data []byte
}

// Split breaks an SMF byte stream into its chunks, in order. Data slices
// alias the input.
func Split(data []byte) ([]Raw, error) {
	var res []Raw
	offset := 0
	for offset < len(data) {
		if len(data)-offset < headerLen {
			return res, fmt.Errorf("%w: %d trailing bytes at offset %d", ErrTruncated, len(data)-offset, offset)
		}
		id := string(data[offset : offset+4])
		length := binary.BigEndian.Uint32(data[offset+4 : offset+8])
		start := offset + headerLen
		end := start + int(length)
		if end > len(data) || end < start {
			return res, fmt.Errorf("%w: %q at offset %d wants %d bytes, %d left", ErrTruncated, id, offset, length, len(data)-start)
		}
		res = append(res, Raw{ID: id, Data: data[start:end]})
		offset = end
	}
	return res, nil
}

func Write(buf *bytes.Buffer, c Raw) {
	buf.WriteString(c.ID)
	binary.Write(buf, binary.BigEndian, uint32(len(c.Data)))
	buf.Write(c.Data)
}

func Join(chunks []Raw) []byte {
	buf := new(bytes.Buffer)
	for _, c := range chunks {
		Write(buf, c)
	}
	return buf.Bytes()
}
