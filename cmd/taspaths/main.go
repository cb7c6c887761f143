// Command taspaths rasterises an instrument description's configuration
// space, builds its collision-free roadmap, searches it for a path between
// a start and goal (alpha2, alpha4) configuration, and writes the result
// out in one of three scan-file dialects.
//
// Usage mirrors noisetorch's single-binary CLI: flags configure the run,
// and one optional positional argument names the instrument description
// file (defaulting to a built-in empty instrument space when absent).
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tweber-ill/taspaths-planner/internal/config"
	"github.com/tweber-ill/taspaths-planner/internal/export"
	"github.com/tweber-ill/taspaths-planner/internal/instrument"
	"github.com/tweber-ill/taspaths-planner/internal/orchestrator"
	"github.com/tweber-ill/taspaths-planner/internal/raster"
	"github.com/tweber-ill/taspaths-planner/internal/rasteriser"
	"github.com/tweber-ill/taspaths-planner/internal/xmlio"
)

func main() {
	opt, err := parseCLIOpts(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if opt.verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, "taspaths:", err)
		os.Exit(1)
	}
}

func run(opt cliOpts) error {
	cfg, err := config.LoadOrInit()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	space, err := loadSpace(opt.instrumentFile)
	if err != nil {
		return fmt.Errorf("load instrument: %w", err)
	}
	space.Instrument.A3OffsetDeg = cfg.A3OffsetDeg

	box := raster.AngleBox{
		Alpha2Min:  cfg.AngleInLowerLimitDeg,
		Alpha2Max:  cfg.AngleInUpperLimitDeg,
		Alpha4Min:  cfg.AngleInLowerLimitDeg,
		Alpha4Max:  cfg.AngleInUpperLimitDeg,
		StepAlpha2: cfg.StepAlpha2Deg,
		StepAlpha4: cfg.StepAlpha4Deg,
	}

	orch := orchestrator.New(space, box)
	orch.PathCfg.WallPenalty = cfg.PenaliseWallsAlpha
	orch.PathCfg.WeightAlpha2 = cfg.DirectPathWeightAlpha2
	orch.PathCfg.WeightAlpha4 = cfg.DirectPathWeightAlpha4
	orch.PathCfg.DirectPathRadius = cfg.DirectPathSearchRadius
	orch.PathCfg.TryDirectPath = cfg.TryDirectPath
	orch.PathCfg.RetractionTopK = cfg.RetractionTopK
	if opt.workers > 0 {
		orch.RasterCfg = rasteriser.Options{Workers: opt.workers}
	}

	ctx := context.Background()
	log.Printf("building path mesh (box %+v)", box)
	if err := orch.UpdatePathMesh(ctx); err != nil {
		return fmt.Errorf("build path mesh: %w", err)
	}

	result, err := orch.FindPath(ctx, opt.startA2, opt.startA4, opt.goalA2, opt.goalA4)
	if err != nil {
		return fmt.Errorf("find path: %w", err)
	}
	log.Printf("found path: %d nodes, cost %.4f, direct=%v", len(result.NodeIDs), result.Cost, result.Direct)

	waypoints, err := export.PathToWaypoints(orch.Graph(), result)
	if err != nil {
		return fmt.Errorf("resolve path waypoints: %w", err)
	}

	format, err := parseExportFormat(opt.exportFormat)
	if err != nil {
		return err
	}

	out := os.Stdout
	if opt.exportPath != "" {
		f, ferr := os.Create(opt.exportPath)
		if ferr != nil {
			return fmt.Errorf("create output file: %w", ferr)
		}
		defer f.Close()
		out = f
	}
	return export.Write(out, format, waypoints)
}

func parseExportFormat(s string) (export.Format, error) {
	switch s {
	case "raw", "":
		return export.FormatRaw, nil
	case "nomad":
		return export.FormatNomad, nil
	case "nicos":
		return export.FormatNicos, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", s)
	}
}

// loadSpace reads an instrument description from path, or builds a bare
// empty instrument space (no walls) when no file was given.
func loadSpace(path string) (*instrument.Space, error) {
	if path == "" {
		return instrument.NewSpace(100, 100), nil
	}
	return xmlio.LoadFile(path)
}
