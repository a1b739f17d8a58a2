package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Chunk is one raw chunk as found in a file.
type Chunk struct {
	Type string
	Data []byte
}

// Image is a decoded truecolour raster. Pix holds RGB triples row by row.
type Image struct {
	Header Header
	Pix    []byte
}

// At returns the colour of pixel (x, y).
func (m *Image) At(x, y int) (r, g, b uint8) {
	i := (y*int(m.Header.Width) + x) * bytesPerPixel
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Solid reports whether every pixel shares one colour, and returns it.
func (m *Image) Solid() (r, g, b uint8, ok bool) {
	if len(m.Pix) < bytesPerPixel {
		return 0, 0, 0, false
	}
	r, g, b = m.Pix[0], m.Pix[1], m.Pix[2]
	for i := 0; i < len(m.Pix); i += bytesPerPixel {
		if m.Pix[i] != r || m.Pix[i+1] != g || m.Pix[i+2] != b {
			return 0, 0, 0, false
		}
	}
	return r, g, b, true
}

// ReadChunks validates the signature and every chunk checksum and returns
// the chunks in file order.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrSignature
	}
	rest := data[len(Signature):]

	var chunks []Chunk
	for len(rest) > 0 {
		if len(rest) < chunkOverhead {
			return nil, ErrTruncated
		}
		n := binary.BigEndian.Uint32(rest[0:4])
		if uint64(n) > uint64(len(rest)-chunkOverhead) {
			return nil, ErrTruncated
		}
		typ := rest[4:8]
		payload := rest[8 : 8+n]
		want := binary.BigEndian.Uint32(rest[8+n : 12+n])

		crc := crc32.NewIEEE()
		crc.Write(typ)
		crc.Write(payload)
		if crc.Sum32() != want {
			return nil, fmt.Errorf("%w in %s", ErrChecksum, typ)
		}

		chunks = append(chunks, Chunk{Type: string(typ), Data: payload})
		rest = rest[12+n:]
	}
	return chunks, nil
}

// Decode parses a PNG produced by Encode: IHDR, one or more IDAT, IEND,
// 8-bit RGB, non-interlaced, filter type 0 on every row.
func Decode(data []byte) (*Image, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) < 3 || chunks[0].Type != typeHeader || chunks[len(chunks)-1].Type != typeTerminator {
		return nil, ErrChunkOrder
	}

	hdr, err := parseHeader(chunks[0].Data)
	if err != nil {
		return nil, err
	}

	var compressed []byte
	for _, c := range chunks[1 : len(chunks)-1] {
		if c.Type != typeImageData {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, c.Type)
		}
		compressed = append(compressed, c.Data...)
	}
	if len(chunks[len(chunks)-1].Data) != 0 {
		return nil, fmt.Errorf("%w: non-empty IEND", ErrChunkOrder)
	}

	stride := 1 + int64(hdr.Width)*bytesPerPixel
	want := stride * int64(hdr.Height)

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	// Inflate at most one byte past the declared size.
	raw, err := io.ReadAll(io.LimitReader(zr, want+1))
	if err != nil {
		return nil, fmt.Errorf("inflate pixel data: %w", err)
	}
	if int64(len(raw)) != want {
		return nil, ErrPixelDataLen
	}

	pix := make([]byte, 0, int(hdr.Width)*int(hdr.Height)*bytesPerPixel)
	for y := 0; y < int(hdr.Height); y++ {
		row := raw[int64(y)*stride : int64(y+1)*stride]
		if row[0] != FilterNone {
			return nil, fmt.Errorf("%w: filter type %d on row %d", ErrUnsupported, row[0], y)
		}
		pix = append(pix, row[1:]...)
	}

	return &Image{Header: hdr, Pix: pix}, nil
}

func parseHeader(b []byte) (Header, error) {
	if len(b) != ihdrLength {
		return Header{}, fmt.Errorf("%w: IHDR length %d", ErrTruncated, len(b))
	}
	h := Header{
		Width:       binary.BigEndian.Uint32(b[0:4]),
		Height:      binary.BigEndian.Uint32(b[4:8]),
		BitDepth:    b[8],
		ColorType:   b[9],
		Compression: b[10],
		Filter:      b[11],
		Interlace:   b[12],
	}
	switch {
	case h.Width == 0 || h.Height == 0:
		return h, ErrInvalidSize
	case h.BitDepth != BitDepth, h.ColorType != ColorTypeRGB:
		return h, fmt.Errorf("%w: depth %d colour type %d", ErrUnsupported, h.BitDepth, h.ColorType)
	case h.Compression != 0, h.Filter != 0, h.Interlace != 0:
		return h, fmt.Errorf("%w: compression %d filter %d interlace %d", ErrUnsupported, h.Compression, h.Filter, h.Interlace)
	}
	return h, nil
}
