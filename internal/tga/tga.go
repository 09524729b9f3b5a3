// Package tga reads and writes minimal uncompressed truecolor TGA images.
package tga

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the fixed TGA header size in bytes.
const HeaderSize = 18

// Comment is written between the header and the pixel rows.
var Comment = []byte("Granger loves you\x00")

const (
	typeTruecolor   = 2
	descriptorTopUp = 0x20 // origin at top-left
)

var (
	// ErrUnsupported means the image is not an uncompressed truecolor TGA.
	ErrUnsupported = errors.New("unsupported TGA image")
	// ErrTruncated means the pixel data is shorter than the header declares.
	ErrTruncated = errors.New("truncated TGA image")
)

// Image is a raster with rows top to bottom and channels in RGB(A) order.
type Image struct {
	Pix    []byte // Width*Height*Depth bytes
	Width  int    // pixels per row
	Height int    // rows
	Depth  int    // bytes per pixel (3 or 4)
}

// Encode writes img as a bottom-to-top, BGR(A) ordered truecolor TGA
// followed by the fixed comment block.
func Encode(w io.Writer, img Image) error {
	if img.Depth != 3 && img.Depth != 4 {
		return fmt.Errorf("%w: depth %d", ErrUnsupported, img.Depth)
	}
	if img.Width <= 0 || img.Width > 0xFFFF || img.Height <= 0 || img.Height > 0xFFFF {
		return fmt.Errorf("%w: size %dx%d", ErrUnsupported, img.Width, img.Height)
	}

	stride := img.Width * img.Depth
	if len(img.Pix) != stride*img.Height {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrTruncated, len(img.Pix), stride*img.Height)
	}

	var hdr [HeaderSize]byte
	hdr[2] = typeTruecolor
	binary.LittleEndian.PutUint16(hdr[12:], uint16(img.Width))
	binary.LittleEndian.PutUint16(hdr[14:], uint16(img.Height))
	hdr[16] = byte(img.Depth * 8)

	out := make([]byte, 0, HeaderSize+len(Comment)+len(img.Pix))
	out = append(out, hdr[:]...)
	out = append(out, Comment...)
	for y := img.Height - 1; y >= 0; y-- {
		row := img.Pix[y*stride : (y+1)*stride]
		for x := 0; x < len(row); x += img.Depth {
			out = append(out, row[x+2], row[x+1], row[x])
			if img.Depth == 4 {
				out = append(out, row[x+3])
			}
		}
	}

	_, err := w.Write(out)
	return err
}

// Decode reads an uncompressed truecolor TGA, including files carrying the
// comment block written by Encode.
func Decode(r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, err
	}

	if len(data) < HeaderSize {
		return Image{}, ErrTruncated
	}

	idLen := int(data[0])
	if data[1] != 0 || data[2] != typeTruecolor {
		return Image{}, fmt.Errorf("%w: color map %d, type %d", ErrUnsupported, data[1], data[2])
	}

	img := Image{
		Width:  int(binary.LittleEndian.Uint16(data[12:])),
		Height: int(binary.LittleEndian.Uint16(data[14:])),
		Depth:  int(data[16]) / 8,
	}
	if data[16] != 24 && data[16] != 32 {
		return Image{}, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, data[16])
	}

	stride := img.Width * img.Depth
	size := stride * img.Height
	body := data[HeaderSize:]
	if len(body) < idLen {
		return Image{}, ErrTruncated
	}
	body = body[idLen:]

	if len(body) >= len(Comment)+size && bytes.HasPrefix(body, Comment) {
		body = body[len(Comment):]
	}
	if len(body) < size {
		return Image{}, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncated, len(body), size)
	}

	topDown := data[17]&descriptorTopUp != 0
	img.Pix = make([]byte, size)
	for y := 0; y < img.Height; y++ {
		src := body[y*stride : (y+1)*stride]
		dy := img.Height - 1 - y
		if topDown {
			dy = y
		}

		dst := img.Pix[dy*stride : (dy+1)*stride]
		for x := 0; x < stride; x += img.Depth {
			dst[x], dst[x+1], dst[x+2] = src[x+2], src[x+1], src[x]
			if img.Depth == 4 {
				dst[x+3] = src[x+3]
			}
		}
	}

	return img, nil
}
