package raster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBox() AngleBox {
	return AngleBox{
		Alpha2Min: 0, Alpha2Max: 10,
		Alpha4Min: 0, Alpha4Max: 20,
		StepAlpha2: 1, StepAlpha4: 1,
	}
}

func TestNewImageDimensions(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)
	require.Equal(t, 20, img.Width)
	require.Equal(t, 10, img.Height)
}

func TestNewImageRejectsInvalidBox(t *testing.T) {
	_, err := New(AngleBox{})
	require.ErrorIs(t, err, ErrEmptyImage)
}

func TestSetGetPixel(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)

	require.NoError(t, img.SetPixel(3, 4, 1))
	v, err := img.GetPixel(3, 4)
	require.NoError(t, err)
	require.Equal(t, byte(1), v)

	_, err = img.GetPixel(100, 100)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSetRowRejectsWrongLength(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)
	err = img.SetRow(0, make([]byte, 3))
	require.ErrorIs(t, err, ErrMismatchedShape)
}

func TestAngleToPixelRoundTrip(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)

	p := img.AngleToPixel(4, 8)
	require.Equal(t, Pixel{X: 8, Y: 4}, p)

	a2, a4 := img.PixelToAngle(p)
	require.Equal(t, 4.0, a2)
	require.Equal(t, 8.0, a4)
}

func TestAngleToPixelClampsOutOfRange(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)

	p := img.AngleToPixel(-5, 1000)
	require.Equal(t, 0, p.Y)
	require.Equal(t, img.Width-1, p.X)
}

func TestNeighborOffsetsCounts(t *testing.T) {
	require.Len(t, NeighborOffsets(Conn4), 4)
	require.Len(t, NeighborOffsets(Conn8), 8)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	img, err := New(testBox())
	require.NoError(t, err)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if (x+y)%3 == 0 {
				require.NoError(t, img.SetPixel(x, y, 1))
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, img.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Box, loaded.Box)
	require.Equal(t, img.Width, loaded.Width)
	require.Equal(t, img.Height, loaded.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			want, _ := img.GetPixel(x, y)
			got, _ := loaded.GetPixel(x, y)
			require.Equal(t, want, got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 60)) // zeroed imageHeader: wrong magic, rest unused
	_, err := Load(&buf)
	require.ErrorIs(t, err, ErrCorruptImage)
}
