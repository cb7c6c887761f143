package orchestrator

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
		StepAlpha2: 2, StepAlpha4: 2,
	}
}

func TestFindPathFailsBeforeMeshBuilt(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	orch := New(space, testBox())

	_, err := orch.FindPath(context.Background(), 0, 0, 5, 5)
	require.ErrorIs(t, err, ErrMeshNotBuilt)
	require.Equal(t, StateIdle, orch.State())
}

func TestUpdatePathMeshReachesReady(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	orch := New(space, testBox())

	err := orch.UpdatePathMesh(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateReady, orch.State())
}

func TestSpaceChangeInvalidatesMesh(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	orch := New(space, testBox())

	require.NoError(t, orch.UpdatePathMesh(context.Background()))
	require.True(t, orch.current.valid)

	space.AddWall("wall0", geom.Primitive{Kind: geom.KindBox, Length: 1, Depth: 1})
	require.False(t, orch.current.valid)
}

func TestInstrumentChangeInvalidatesMesh(t *testing.T) {
	space := instrument.NewSpace(20, 20)
	orch := New(space, testBox())

	require.NoError(t, orch.UpdatePathMesh(context.Background()))
	require.True(t, orch.current.valid)

	require.NoError(t, space.Instrument.SetSampleAngles(1, 1))
	require.False(t, orch.current.valid)
}
