// Package raster is the config-space Image buffer: a fixed-size row-major
// byte raster with an affine pixel<->angle mapping, plus 4/8-connectivity
// helpers for contour tracing.
//
// It is adapted from lvlath/gridgraph: the row-major layout, the
// InBounds/NeighborOffsets/index shape and the Conn4/Conn8 connectivity
// selector survive, but storage becomes one flat slice whose cell type
// narrows to a single byte
// (an occupancy grid, not an arbitrary-valued terrain grid) and the type
// gains the affine angle<->pixel mapping this requires, which
// gridgraph, a pure graph-of-a-grid utility, has no notion of.
package raster

import (
	"compress/flate"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors.
var (
	ErrEmptyImage      = errors.New("raster: width and height must be positive")
	ErrOutOfBounds     = errors.New("raster: pixel coordinate out of bounds")
	ErrMismatchedShape = errors.New("raster: shapes do not match")
	ErrCorruptImage    = errors.New("raster: corrupt image stream")
)

// imageMagic tags a Save stream so Load can reject anything else early
// rather than fail deep inside the flate reader.
const imageMagic uint32 = 0x54415349 // "TASI"

// imageHeader is the encoding/binary-fixed-size prefix Save writes ahead of
// the compressed pixel stream: the AngleBox (step sizes and origin, per
// §4.B's affine pixel<->angle map) plus the derived width/height, so Load
// can validate the pixel stream length before trusting it.
type imageHeader struct {
	Magic      uint32
	Width      uint32
	Height     uint32
	Alpha2Min  float64
	Alpha2Max  float64
	Alpha4Min  float64
	Alpha4Max  float64
	StepAlpha2 float64
	StepAlpha4 float64
}

// Connectivity selects 4- or 8-neighbour adjacency, exactly as
// lvlath/gridgraph.Connectivity does.
type Connectivity int

const (
	// Conn4 is orthogonal (N, E, S, W) connectivity.
	Conn4 Connectivity = iota
	// Conn8 additionally includes the four diagonals.
	Conn8
)

// Pixel is an integer pixel coordinate (x = column/alpha4 axis, y =
// row/alpha2 axis).
type Pixel struct {
	X, Y int
}

// AngleBox is the rectangle [alpha2Min,alpha2Max] x [alpha4Min,alpha4Max]
// the Image is sampled over, with the sampling steps (its AngleBox).
type AngleBox struct {
	Alpha2Min, Alpha2Max float64
	Alpha4Min, Alpha4Max float64
	StepAlpha2           float64
	StepAlpha4           float64
}

// Valid reports whether the box satisfies the AngleBox invariants.
func (b AngleBox) Valid() bool {
	return b.Alpha2Max > b.Alpha2Min &&
		b.Alpha4Max > b.Alpha4Min &&
		b.StepAlpha2 > 0 &&
		b.StepAlpha4 > 0
}

// Width returns ceil((alpha4Max-alpha4Min)/stepAlpha4).
func (b AngleBox) Width() int {
	return ceilDiv(b.Alpha4Max-b.Alpha4Min, b.StepAlpha4)
}

// Height returns ceil((alpha2Max-alpha2Min)/stepAlpha2).
func (b AngleBox) Height() int {
	return ceilDiv(b.Alpha2Max-b.Alpha2Min, b.StepAlpha2)
}

func ceilDiv(span, step float64) int {
	n := int(span / step)
	if float64(n)*step < span {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Image is a row-major byte raster over an AngleBox. A pixel value > 0
// marks the corresponding configuration as forbidden.
type Image struct {
	Box    AngleBox
	Width  int
	Height int
	pixels []byte // row-major, length Width*Height
}

// New allocates a zeroed Image for the given AngleBox. Returns
// ErrEmptyImage if the box is not Valid.
func New(box AngleBox) (*Image, error) {
	w, h := box.Width(), box.Height()
	if !box.Valid() || w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	return &Image{Box: box, Width: w, Height: h, pixels: make([]byte, w*h)}, nil
}

// index maps (x,y) to the flat row-major offset: y*Width + x.
func (img *Image) index(x, y int) int { return y*img.Width + x }

// InBounds reports whether (x,y) lies within the image.
func (img *Image) InBounds(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

// GetPixel returns the byte at (x,y), or an error if out of bounds.
func (img *Image) GetPixel(x, y int) (byte, error) {
	if !img.InBounds(x, y) {
		return 0, ErrOutOfBounds
	}
	return img.pixels[img.index(x, y)], nil
}

// SetPixel writes value at (x,y), or returns an error if out of bounds.
func (img *Image) SetPixel(x, y int, value byte) error {
	if !img.InBounds(x, y) {
		return ErrOutOfBounds
	}
	img.pixels[img.index(x, y)] = value
	return nil
}

// SetRow overwrites an entire row at once, the unit of work the
// rasteriser's worker pool dispatches (each row is an
// independent task").
func (img *Image) SetRow(y int, row []byte) error {
	if y < 0 || y >= img.Height || len(row) != img.Width {
		return ErrMismatchedShape
	}
	copy(img.pixels[img.index(0, y):img.index(0, y)+img.Width], row)
	return nil
}

// Row returns a read-only view of row y.
func (img *Image) Row(y int) []byte {
	if y < 0 || y >= img.Height {
		return nil
	}
	start := img.index(0, y)
	return img.pixels[start : start+img.Width]
}

// NeighborOffsets returns the (dx,dy) offsets for the requested
// connectivity, matching lvlath/gridgraph.NeighborOffsets.
func NeighborOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}
	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// PixelToAngle converts a pixel coordinate to its angular configuration
// (alpha2, alpha4), via the affine map of this
func (img *Image) PixelToAngle(p Pixel) (alpha2, alpha4 float64) {
	alpha4 = img.Box.Alpha4Min + float64(p.X)*img.Box.StepAlpha4
	alpha2 = img.Box.Alpha2Min + float64(p.Y)*img.Box.StepAlpha2
	return alpha2, alpha4
}

// AngleToPixel converts an angular configuration to the nearest pixel,
// clamped to [0,Width-1] x [0,Height-1] (snap to pixel).
func (img *Image) AngleToPixel(alpha2, alpha4 float64) Pixel {
	x := roundNearest((alpha4 - img.Box.Alpha4Min) / img.Box.StepAlpha4)
	y := roundNearest((alpha2 - img.Box.Alpha2Min) / img.Box.StepAlpha2)
	return Pixel{clamp(x, 0, img.Width-1), clamp(y, 0, img.Height-1)}
}

// AngleToPixelFrac is the "return fractional" variant of AngleToPixel
// used wherever sub-pixel precision matters (e.g. direct-path
// length computation).
func (img *Image) AngleToPixelFrac(alpha2, alpha4 float64) (x, y float64) {
	x = (alpha4 - img.Box.Alpha4Min) / img.Box.StepAlpha4
	y = (alpha2 - img.Box.Alpha2Min) / img.Box.StepAlpha2
	return x, y
}

func roundNearest(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Save writes img as a bit-packed, flate-compressed stream: a fixed-size
// encoding/binary header (the AngleBox plus its derived width/height)
// followed by the occupancy grid packed one bit per pixel and
// compressed with compress/flate. An occupancy grid is overwhelmingly one
// value run after another, bit-packing first gives flate's LZ77 stage
// long, cheap runs to collapse instead of one byte per pixel.
func (img *Image) Save(w io.Writer) error {
	header := imageHeader{
		Magic:      imageMagic,
		Width:      uint32(img.Width),
		Height:     uint32(img.Height),
		Alpha2Min:  img.Box.Alpha2Min,
		Alpha2Max:  img.Box.Alpha2Max,
		Alpha4Min:  img.Box.Alpha4Min,
		Alpha4Max:  img.Box.Alpha4Max,
		StepAlpha2: img.Box.StepAlpha2,
		StepAlpha4: img.Box.StepAlpha4,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("raster: write header: %w", err)
	}

	fw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return err
	}
	if _, err := fw.Write(packBits(img.pixels)); err != nil {
		return err
	}
	return fw.Close()
}

// Load reads an Image previously written by Save.
func Load(r io.Reader) (*Image, error) {
	var header imageHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("raster: read header: %w", err)
	}
	if header.Magic != imageMagic {
		return nil, ErrCorruptImage
	}

	box := AngleBox{
		Alpha2Min: header.Alpha2Min, Alpha2Max: header.Alpha2Max,
		Alpha4Min: header.Alpha4Min, Alpha4Max: header.Alpha4Max,
		StepAlpha2: header.StepAlpha2, StepAlpha4: header.StepAlpha4,
	}
	img, err := New(box)
	if err != nil {
		return nil, err
	}
	if uint32(img.Width) != header.Width || uint32(img.Height) != header.Height {
		return nil, ErrCorruptImage
	}

	fr := flate.NewReader(r)
	defer fr.Close()
	packed := make([]byte, packedLen(len(img.pixels)))
	if _, err := io.ReadFull(fr, packed); err != nil {
		return nil, fmt.Errorf("raster: read pixel stream: %w", err)
	}
	unpackBits(packed, img.pixels)
	return img, nil
}

// packedLen is the number of bytes n one-bit pixels pack into.
func packedLen(n int) int { return (n + 7) / 8 }

// packBits bit-packs an occupancy byte slice (zero/nonzero per pixel)
// eight pixels to a byte, LSB first.
func packBits(pixels []byte) []byte {
	packed := make([]byte, packedLen(len(pixels)))
	for i, p := range pixels {
		if p != 0 {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	return packed
}

// unpackBits is packBits's inverse, writing a 0/1 byte per pixel into out.
func unpackBits(packed, out []byte) {
	for i := range out {
		if packed[i/8]&(1<<uint(i%8)) != 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}
