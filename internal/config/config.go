// File: config.go
// Role: the single CoreConfig struct (a "global mutable state" design
// note) plus its TOML persistence, modeled directly on noisetorch's
// initializeConfigIfNot / readConfig / writeConfig triad.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
)

// fileName is the TOML file name written under the resolved config directory.
const fileName = "taspaths.toml"

// CoreConfig packages the planner's tunable parameters: epsilons, thread
// counts, and feature toggles; nothing here is a process-wide global.
// cmd/taspaths copies the angle limits, step sizes, A3 offset and the
// pathfinder's wall-penalty, direct-path and retraction settings from it
// into the instrument and the Orchestrator; the other fields are saved and
// loaded but not read by any pipeline stage.
type CoreConfig struct {
	// --- angular sampling ---
	StepAlpha2Deg float64 `toml:"step_alpha2_deg"`
	StepAlpha4Deg float64 `toml:"step_alpha4_deg"`
	PaddingDeg    float64 `toml:"padding_deg"`
	A3OffsetDeg   float64 `toml:"a3_offset_deg"`
	KfFixed       bool    `toml:"kf_fixed"`

	// --- rasteriser worker pool ---
	MaxWorkers           int     `toml:"max_workers"`
	ProgressMinInterval  float64 `toml:"progress_min_interval_seconds"`
	CollisionBackendName string  `toml:"collision_backend"` // "sweep_line" | "half_plane"

	// --- contour extraction ---
	DouglasPeuckerEps       float64 `toml:"douglas_peucker_eps_px"`
	SplitIntoConvex         bool    `toml:"split_into_convex"`
	PreferFewerConvexPieces bool    `toml:"prefer_fewer_convex_pieces"`

	// --- Voronoi builder ---
	VoronoiBackendName     string  `toml:"voronoi_backend"` // "segment" | "point_sampled"
	EpsVoronoiEdge         float64 `toml:"eps_voronoi_edge"`
	EpsGUI                 float64 `toml:"eps_gui_px"`
	VoronoiSiteLinkRadius  float64 `toml:"voronoi_site_link_radius_px"`
	UseRegionFunction      bool    `toml:"use_region_function"`
	MinDistToWalls         float64 `toml:"min_dist_to_walls_px"`
	PostFilterWallDistance bool    `toml:"post_filter_wall_distance"`

	// --- retraction + pathfinder ---
	RetractionTopK          int     `toml:"retraction_top_k"`
	TryDirectPath           bool    `toml:"try_direct_path"`
	DirectPathSearchRadius  float64 `toml:"direct_path_search_radius_deg"`
	DirectPathWeightAlpha2  float64 `toml:"direct_path_weight_alpha2"`
	DirectPathWeightAlpha4  float64 `toml:"direct_path_weight_alpha4"`
	EdgeWeightPolicyName    string  `toml:"edge_weight_policy"` // "shortest" | "penalise_walls"
	PenaliseWallsAlpha      float64 `toml:"penalise_walls_alpha"`
	VerifyPath              bool    `toml:"verify_path"`
	PathSubdivisionStepDeg  float64 `toml:"path_subdivision_step_deg"`

	// --- instrument / collision ---
	AngleInLowerLimitDeg  float64 `toml:"angle_in_lower_limit_deg"`
	AngleInUpperLimitDeg  float64 `toml:"angle_in_upper_limit_deg"`
	SenseMonochromator    float64 `toml:"sense_monochromator"`
	SenseSample           float64 `toml:"sense_sample"`
	SenseAnalyser         float64 `toml:"sense_analyser"`

	// --- export device names ---
	DeviceMonochromator string `toml:"device_monochromator"`
	DeviceSample        string `toml:"device_sample"`
	DeviceAnalyser      string `toml:"device_analyser"`
	DeviceA3            string `toml:"device_a3"`

	// --- misc ---
	Verbose bool `toml:"verbose"`
}

// Default returns the out-of-the-box CoreConfig, matching the defaults a
// fresh taspaths.toml is initialized with.
func Default() CoreConfig {
	return CoreConfig{
		StepAlpha2Deg: 1.0,
		StepAlpha4Deg: 1.0,
		PaddingDeg:    0,
		A3OffsetDeg:   0,
		KfFixed:       true,

		MaxWorkers:           0, // not read: orchestrator.New uses 4 workers, overridden only by the -workers flag
		ProgressMinInterval:  0.1,
		CollisionBackendName: "sweep_line",

		DouglasPeuckerEps:       1.0,
		SplitIntoConvex:         true,
		PreferFewerConvexPieces: false,

		VoronoiBackendName:     "segment",
		EpsVoronoiEdge:         0.05,
		EpsGUI:                 1.0,
		VoronoiSiteLinkRadius:  256,
		UseRegionFunction:      true,
		MinDistToWalls:         2.0,
		PostFilterWallDistance: false,

		RetractionTopK:         64,
		TryDirectPath:          true,
		DirectPathSearchRadius: 5.0,
		DirectPathWeightAlpha2: 1.0,
		DirectPathWeightAlpha4: 1.0,
		EdgeWeightPolicyName:   "shortest",
		PenaliseWallsAlpha:     1.0,
		VerifyPath:             true,
		PathSubdivisionStepDeg: 0,

		AngleInLowerLimitDeg: -180,
		AngleInUpperLimitDeg: 180,
		SenseMonochromator:   1,
		SenseSample:          1,
		SenseAnalyser:        1,

		DeviceMonochromator: "mono_stt",
		DeviceSample:        "sample_stt",
		DeviceAnalyser:      "ana_stt",
		DeviceA3:            "sample_sth",

		Verbose: false,
	}
}

// CollisionBackend resolves CollisionBackendName into the geom enum.
func (c CoreConfig) CollisionBackend() geom.CollisionBackend {
	if c.CollisionBackendName == "half_plane" {
		return geom.BackendHalfPlane
	}
	return geom.BackendSweepLine
}

// dirName is the XDG-style config subdirectory the planner reads and writes
// its settings file from, mirroring noisetorch's configDir() helper.
const dirName = "taspaths"

// Dir resolves the configuration directory, preferring $XDG_CONFIG_HOME the
// way noisetorch's configDir/xdgOrFallback does, falling back to
// ~/.config/taspaths.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, dirName)
}

// Load reads CoreConfig from path. If the file does not exist, Default() is
// returned with ok=false so the caller can decide whether to initialize it.
func Load(path string) (CoreConfig, bool, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, false, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return CoreConfig{}, false, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, true, nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg CoreConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// LoadOrInit loads the config from its default directory, writing out
// Default() the first time the file is missing, the exact sequence of
// noisetorch's initializeConfigIfNot followed by readConfig.
func LoadOrInit() (CoreConfig, error) {
	path := filepath.Join(Dir(), fileName)
	cfg, existed, err := Load(path)
	if err != nil {
		return CoreConfig{}, err
	}
	if !existed {
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return CoreConfig{}, err
		}
	}
	return cfg, nil
}
