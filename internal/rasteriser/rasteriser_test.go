package rasteriser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/instrument"
	"github.com/tweber-ill/taspaths-planner/internal/raster"
)

func testBox() raster.AngleBox {
	return raster.AngleBox{
		Alpha2Min: -10, Alpha2Max: 10,
		Alpha4Min: -10, Alpha4Max: 10,
		StepAlpha2: 1, StepAlpha4: 1,
	}
}

func TestRunMarksCollidingPixels(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	space.AddWall("w", geom.Primitive{Kind: geom.KindBox, Length: 1, Depth: 1})
	space.Instrument.Sample.CompsInternal = []geom.Primitive{
		{Kind: geom.KindBox, Length: 1, Depth: 1},
	}

	img, err := raster.New(testBox())
	require.NoError(t, err)

	err = Run(context.Background(), space, img, Options{Workers: 4})
	require.NoError(t, err)

	zeroPixel := img.AngleToPixel(0, 0)
	v, err := img.GetPixel(zeroPixel.X, zeroPixel.Y)
	require.NoError(t, err)
	require.Equal(t, byte(1), v)
}

func TestRunRespectsCancellation(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	img, err := raster.New(testBox())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Run(ctx, space, img, Options{Workers: 2})
	require.ErrorIs(t, err, ErrCancelled)
}

func TestRunSequentialWhenWorkersUnset(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	img, err := raster.New(testBox())
	require.NoError(t, err)

	var visited int
	err = Run(context.Background(), space, img, Options{Progress: func(int) { visited++ }})
	require.NoError(t, err)
	require.Equal(t, img.Height, visited)
}
