package xth

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic identifies an XTH frame.
var Magic = [4]byte{'X', 'T', 'H', 0}

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = 22

// Frame decoding errors.
var (
	ErrBadMagic       = errors.New("xth: bad magic")
	ErrShortFrame     = errors.New("xth: truncated frame")
	ErrLengthMismatch = errors.New("xth: payload length does not match dimensions")
	ErrDigestMismatch = errors.New("xth: payload digest mismatch")
)

// Header is the fixed frame header. Field order and widths match the wire
// layout; binary.Write encodes it without padding.
type Header struct {
	Magic         [4]byte
	Width         uint16
	Height        uint16
	Reserved      [2]uint8
	PayloadLength uint32
	Digest        [8]byte
}

// Frame is an encoded picture: header plus both bit planes.
type Frame struct {
	Header Header
	Plane0 []byte
	Plane1 []byte
}

// Digest returns the first 8 bytes of the MD5 of plane0 followed by
// plane1.
func Digest(plane0, plane1 []byte) [8]byte {
	h := md5.New()
	h.Write(plane0)
	h.Write(plane1)

	var d [8]byte
	copy(d[:], h.Sum(nil))
	return d
}

// Encode packs the grid and builds its frame.
func Encode(g *Grid) (*Frame, error) {
	if g.Width <= 0 || g.Height <= 0 || g.Width > 0xFFFF || g.Height > 0xFFFF {
		return nil, fmt.Errorf("xth: unsupported grid size %dx%d", g.Width, g.Height)
	}

	plane0, plane1 := Pack(g)
	return &Frame{
		Header: Header{
			Magic:         Magic,
			Width:         uint16(g.Width),
			Height:        uint16(g.Height),
			PayloadLength: uint32(len(plane0) + len(plane1)),
			Digest:        Digest(plane0, plane1),
		},
		Plane0: plane0,
		Plane1: plane1,
	}, nil
}

// Size returns the total encoded size of the frame.
func (f *Frame) Size() int64 {
	return int64(HeaderSize + len(f.Plane0) + len(f.Plane1))
}

// WriteTo writes the header followed by plane0 and plane1.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(int(f.Size()))
	if err := binary.Write(&buf, binary.LittleEndian, &f.Header); err != nil {
		return 0, fmt.Errorf("xth: encode header: %w", err)
	}
	buf.Write(f.Plane0)
	buf.Write(f.Plane1)
	return buf.WriteTo(w)
}

// MarshalBinary returns the encoded frame.
func (f *Frame) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Grid unpacks the frame's planes.
func (f *Frame) Grid() (*Grid, error) {
	return Unpack(f.Plane0, f.Plane1, int(f.Header.Width), int(f.Header.Height))
}

// ReadHeader reads and validates the magic of a frame header.
func ReadHeader(r io.Reader) (*Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, fmt.Errorf("xth: read header: %w", err)
	}
	if h.Magic != Magic {
		return nil, ErrBadMagic
	}
	return &h, nil
}

// Decode reads a complete frame and verifies its payload length and
// digest.
func Decode(r io.Reader) (*Frame, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	size := PlaneSize(int(h.Width), int(h.Height))
	if int64(h.PayloadLength) != 2*int64(size) {
		return nil, fmt.Errorf("%w: header says %d, %dx%d needs %d",
			ErrLengthMismatch, h.PayloadLength, h.Width, h.Height, 2*size)
	}

	payload := make([]byte, h.PayloadLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ErrShortFrame
	}

	f := &Frame{
		Header: *h,
		Plane0: payload[:size],
		Plane1: payload[size:],
	}
	if Digest(f.Plane0, f.Plane1) != h.Digest {
		return nil, ErrDigestMismatch
	}
	return f, nil
}
