// Package pngenc writes and reads the minimal PNG subset used for
// placeholder art: 8-bit truecolour, no alpha, no interlacing, one IDAT
// chunk with filter type 0 on every row.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	BitDepth       = 8
	ColorTypeRGB   = 2
	FilterNone     = 0
	bytesPerPixel  = 3
	ihdrLength     = 13
	maxDimension   = 1<<31 - 1
	chunkOverhead  = 12 // length + type + crc
	typeHeader     = "IHDR"
	typeImageData  = "IDAT"
	typeTerminator = "IEND"
)

var (
	ErrInvalidSize  = errors.New("pngenc: width and height must be between 1 and 2^31-1")
	ErrSignature    = errors.New("pngenc: not a PNG file")
	ErrChecksum     = errors.New("pngenc: chunk checksum mismatch")
	ErrTruncated    = errors.New("pngenc: truncated data")
	ErrUnsupported  = errors.New("pngenc: unsupported PNG feature")
	ErrChunkOrder   = errors.New("pngenc: unexpected chunk order")
	ErrPixelDataLen = errors.New("pngenc: decompressed pixel data has the wrong length")
)

// Header mirrors the IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

func (h Header) bytes() []byte {
	b := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = h.ColorType
	b[10] = h.Compression
	b[11] = h.Filter
	b[12] = h.Interlace
	return b
}

// EncodeSolidColorImage returns a complete PNG file of the given size where
// every pixel is (r, g, b).
func EncodeSolidColorImage(width, height int, r, g, b uint8) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, width, height, r, g, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes a solid-colour PNG to w.
func Encode(w io.Writer, width, height int, r, g, b uint8) error {
	if width < 1 || height < 1 || width > maxDimension || height > maxDimension {
		return ErrInvalidSize
	}

	hdr := Header{
		Width:     uint32(width),
		Height:    uint32(height),
		BitDepth:  BitDepth,
		ColorType: ColorTypeRGB,
	}

	data, err := compressRows(width, height, r, g, b)
	if err != nil {
		return err
	}

	if _, err := w.Write(Signature); err != nil {
		return err
	}
	if err := writeChunk(w, typeHeader, hdr.bytes()); err != nil {
		return err
	}
	if err := writeChunk(w, typeImageData, data); err != nil {
		return err
	}
	return writeChunk(w, typeTerminator, nil)
}

// compressRows deflates height identical scanlines, each a filter byte
// followed by width RGB triples.
func compressRows(width, height int, r, g, b uint8) ([]byte, error) {
	row := make([]byte, 1+width*bytesPerPixel)
	row[0] = FilterNone
	for x := 0; x < width; x++ {
		i := 1 + x*bytesPerPixel
		row[i], row[i+1], row[i+2] = r, g, b
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		if _, err := zw.Write(row); err != nil {
			return nil, fmt.Errorf("compress row %d: %w", y, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zlib writer: %w", err)
	}
	return buf.Bytes(), nil
}

// writeChunk serialises one chunk: big-endian payload length, type tag,
// payload, then CRC-32 of type tag and payload.
func writeChunk(w io.Writer, typ string, payload []byte) error {
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(len(payload)))
	copy(head[4:8], typ)

	crc := crc32.NewIEEE()
	crc.Write(head[4:8])
	crc.Write(payload)

	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())

	for _, part := range [][]byte{head[:], payload, tail[:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}
