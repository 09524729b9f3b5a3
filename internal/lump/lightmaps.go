package lump

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/woozymasta/bsp-tool/internal/tga"
)

// Geometry is the fixed raster size of one lightmap image.
type Geometry struct {
	Width  int // pixels per row
	Height int // rows
	Depth  int // bytes per pixel
}

// Known lightmap geometries.
var (
	// SmallLightmap is used by the base formats.
	SmallLightmap = Geometry{Width: 128, Height: 128, Depth: 3}
	// LargeLightmap is used by large-lightmap formats.
	LargeLightmap = Geometry{Width: 512, Height: 512, Depth: 3}
)

// ImageSize returns the byte size of one image.
func (g Geometry) ImageSize() int {
	return g.Width * g.Height * g.Depth
}

// String returns WxHxD.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Width, g.Height, g.Depth)
}

// lightmapImagePrefix is the file name prefix of per-image files.
const lightmapImagePrefix = "lm_"

// LightmapLump is the lightmap lump: equal-size raw images without separators.
type LightmapLump struct {
	Images   [][]byte // each Geometry.ImageSize() bytes, rows top to bottom, RGB
	Geometry Geometry
}

// Kind returns Lightmaps.
func (l *LightmapLump) Kind() Kind { return Lightmaps }

// Decode slices data into consecutive images.
func (l *LightmapLump) Decode(data []byte) error {
	size := l.Geometry.ImageSize()
	if size <= 0 {
		return errors.Wrapf(ErrSize, "lightmaps: invalid geometry %s", l.Geometry)
	}
	if len(data)%size != 0 {
		return errors.Wrapf(ErrSize, "lightmaps: length %d is not a multiple of %d (%s)", len(data), size, l.Geometry)
	}

	images := make([][]byte, 0, len(data)/size)
	for pos := 0; pos < len(data); pos += size {
		images = append(images, append([]byte(nil), data[pos:pos+size]...))
	}

	l.Images = images
	return nil
}

// Encode concatenates the images. An empty set encodes to an empty lump.
func (l *LightmapLump) Encode() ([]byte, error) {
	if len(l.Images) == 0 {
		return nil, nil
	}

	size := l.Geometry.ImageSize()
	out := make([]byte, 0, len(l.Images)*size)
	for i, img := range l.Images {
		if len(img) != size {
			return nil, errors.Wrapf(ErrSize, "lightmaps: image %d is %d bytes, want %d", i, len(img), size)
		}
		out = append(out, img...)
	}

	return out, nil
}

// Strip drops every image.
func (l *LightmapLump) Strip() {
	l.Images = nil
}

// ReadFile loads the binary lump from a file.
func (l *LightmapLump) ReadFile(path string) error {
	return readRaw(l, path)
}

// WriteFile stores the binary lump in a file.
func (l *LightmapLump) WriteFile(path string) error {
	return writeRaw(l, path)
}

// ReadDirEntry loads every lm_* image file of dir/name in file name order.
// Other files are ignored.
func (l *LightmapLump) ReadDirEntry(dir string, name string) error {
	root := filepath.Join(dir, name)
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), lightmapImagePrefix) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	images := make([][]byte, 0, len(files))
	for _, file := range files {
		img, err := l.readImage(filepath.Join(root, file))
		if err != nil {
			return errors.Wrapf(err, "lightmaps: %s", filepath.Join(name, file))
		}
		images = append(images, img)
	}

	l.Images = images
	return nil
}

// readImage decodes one image file into raw top-to-bottom RGB bytes.
func (l *LightmapLump) readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var (
		pix    []byte
		w, h   int
		depth  int
		ext    = strings.ToLower(filepath.Ext(path))
		reader = bytes.NewReader(data)
	)

	switch ext {
	case ".tga":
		img, err := tga.Decode(reader)
		if err != nil {
			return nil, errors.Wrap(ErrFormat, err.Error())
		}
		pix, w, h, depth = img.Pix, img.Width, img.Height, img.Depth

	case ".png":
		img, err := png.Decode(reader)
		if err != nil {
			return nil, errors.Wrap(ErrFormat, err.Error())
		}
		pix, w, h, depth = imageRGB(img), img.Bounds().Dx(), img.Bounds().Dy(), 3

	default:
		return nil, errors.Wrapf(ErrFormat, "unrecognized image extension %q", ext)
	}

	if w != l.Geometry.Width || h != l.Geometry.Height {
		return nil, errors.Wrapf(ErrSize, "image is %dx%d, want %dx%d", w, h, l.Geometry.Width, l.Geometry.Height)
	}

	return convertDepth(pix, depth, l.Geometry.Depth), nil
}

// WriteDirEntry writes dir/<lumpName>.d/lm_NNNN.tga, one file per image,
// and removes stale image files beyond the current count.
func (l *LightmapLump) WriteDirEntry(dir string, lumpName string) (string, error) {
	name := lumpName + Lightmaps.Ext()
	root := filepath.Join(dir, name)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}

	keep := make(map[string]struct{}, len(l.Images))
	for i, pix := range l.Images {
		file := fmt.Sprintf("%s%04d.tga", lightmapImagePrefix, i)
		keep[file] = struct{}{}

		var buf bytes.Buffer
		err := tga.Encode(&buf, tga.Image{
			Pix:    pix,
			Width:  l.Geometry.Width,
			Height: l.Geometry.Height,
			Depth:  l.Geometry.Depth,
		})
		if err != nil {
			return "", errors.Wrapf(ErrSize, "lightmaps: image %d: %v", i, err)
		}

		if err := writeFileIfChanged(filepath.Join(root, file), buf.Bytes()); err != nil {
			return "", err
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if _, ok := keep[e.Name()]; ok || !strings.HasPrefix(e.Name(), lightmapImagePrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return "", err
		}
	}

	return name, nil
}

// Empty reports a zero-image set.
func (l *LightmapLump) Empty() bool {
	return len(l.Images) == 0
}

// imageRGB flattens img into top-to-bottom RGB bytes.
func imageRGB(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}

	return out
}

// convertDepth drops or adds channels so every pixel has to bytes.
func convertDepth(pix []byte, from int, to int) []byte {
	if from == to {
		return pix
	}

	n := len(pix) / from
	out := make([]byte, n*to)
	for i := 0; i < n; i++ {
		src := pix[i*from : (i+1)*from]
		dst := out[i*to : (i+1)*to]
		for c := range dst {
			if c < len(src) {
				dst[c] = src[c]
			} else {
				dst[c] = 0xFF
			}
		}
	}

	return out
}
