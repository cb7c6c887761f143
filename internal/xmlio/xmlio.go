// Package xmlio loads and saves the instrument description (axes, zero
// positions, limits, attached geometry, walls, floor size) as XML, the
// same wire format original_source's Axis::Load/Save and
// InstrumentSpace::Load/Save round-trip through boost::property_tree.
// encoding/xml, not a pack third-party XML library, is the right tool
// here: none of the example repos import an XML package at all, and Go's
// standard encoding/xml is itself the idiomatic choice for a tree-shaped
// config-file format with no streaming or namespace requirements.
package xmlio

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/tweber-ill/taspaths-planner/internal/buildinfo"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/instrument"
)

// ErrUnsupportedGeometry is returned when a geometry primitive's kind
// cannot be round-tripped through the XML schema.
var ErrUnsupportedGeometry = errors.New("xmlio: unsupported geometry kind")

// Document is the root XML element of an instrument description file.
type Document struct {
	XMLName xml.Name   `xml:"instrument_space"`
	Version string     `xml:"version,attr"`
	FloorX  float64    `xml:"floor_len_x"`
	FloorY  float64    `xml:"floor_len_y"`
	Walls   []wallXML  `xml:"wall"`
	Axes    []axisXML  `xml:"axis"`
}

type wallXML struct {
	ID   string `xml:"id,attr"`
	Prim primXML `xml:"primitive"`
}

type axisXML struct {
	ID            string    `xml:"id,attr"`
	ZeroX         float64   `xml:"zero_x"`
	ZeroY         float64   `xml:"zero_y"`
	AngleIn       float64   `xml:"angle_in"`
	AngleInternal float64   `xml:"angle_internal"`
	AngleOut      float64   `xml:"angle_out"`
	Comps         []primXML `xml:"component"`
}

type primXML struct {
	Kind     string  `xml:"kind,attr"`
	Length   float64 `xml:"length,attr,omitempty"`
	Depth    float64 `xml:"depth,attr,omitempty"`
	Radius   float64 `xml:"radius,attr,omitempty"`
	Segments int     `xml:"segments,attr,omitempty"`
}

func kindToString(k geom.PrimitiveKind) (string, error) {
	switch k {
	case geom.KindBox:
		return "box", nil
	case geom.KindCylinder:
		return "cylinder", nil
	case geom.KindSphere:
		return "sphere", nil
	default:
		return "", ErrUnsupportedGeometry
	}
}

func stringToKind(s string) (geom.PrimitiveKind, error) {
	switch s {
	case "box":
		return geom.KindBox, nil
	case "cylinder":
		return geom.KindCylinder, nil
	case "sphere":
		return geom.KindSphere, nil
	default:
		return 0, ErrUnsupportedGeometry
	}
}

func toPrimXML(p geom.Primitive) (primXML, error) {
	kind, err := kindToString(p.Kind)
	if err != nil {
		return primXML{}, err
	}
	return primXML{Kind: kind, Length: p.Length, Depth: p.Depth, Radius: p.Radius, Segments: p.Segments}, nil
}

func fromPrimXML(x primXML) (geom.Primitive, error) {
	kind, err := stringToKind(x.Kind)
	if err != nil {
		return geom.Primitive{}, err
	}
	return geom.Primitive{Kind: kind, Length: x.Length, Depth: x.Depth, Radius: x.Radius, Segments: x.Segments}, nil
}

// Save writes space's configuration to w as XML, tagged with the current
// buildinfo.FormatVersion.
func Save(w io.Writer, space *instrument.Space) error {
	doc := Document{
		Version: buildinfo.FormatVersion.String(),
		FloorX:  space.FloorLenX,
		FloorY:  space.FloorLenY,
	}
	for _, wall := range space.Walls {
		px, err := toPrimXML(wall)
		if err != nil {
			return err
		}
		doc.Walls = append(doc.Walls, wallXML{ID: wall.ID, Prim: px})
	}
	for _, axis := range []*instrument.Axis{space.Instrument.Monochromator, space.Instrument.Sample, space.Instrument.Analyser} {
		ax := axisXML{
			ID:            axis.ID,
			ZeroX:         axis.ZeroPos.X,
			ZeroY:         axis.ZeroPos.Y,
			AngleIn:       axis.AngleIn,
			AngleInternal: axis.AngleInternal,
			AngleOut:      axis.AngleOut,
		}
		for _, comp := range axis.CompsIncoming {
			px, err := toPrimXML(comp)
			if err != nil {
				return err
			}
			ax.Comps = append(ax.Comps, px)
		}
		doc.Axes = append(doc.Axes, ax)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

// SaveFile is a convenience wrapper around Save that writes to a path.
func SaveFile(path string, space *instrument.Space) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, space)
}

// Load reads an instrument description from r and rebuilds a
// *instrument.Space from it, rejecting any file whose declared format
// version is incompatible with this build (buildinfo.CheckCompatible).
func Load(r io.Reader) (*instrument.Space, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if err := buildinfo.CheckCompatible(doc.Version); err != nil {
		return nil, err
	}

	space := instrument.NewSpace(doc.FloorX, doc.FloorY)
	for _, w := range doc.Walls {
		prim, err := fromPrimXML(w.Prim)
		if err != nil {
			return nil, err
		}
		space.AddWall(w.ID, prim)
	}

	byID := map[string]*instrument.Axis{
		"monochromator": space.Instrument.Monochromator,
		"sample":        space.Instrument.Sample,
		"analyser":      space.Instrument.Analyser,
	}
	for _, ax := range doc.Axes {
		axis, ok := byID[ax.ID]
		if !ok {
			continue
		}
		axis.ZeroPos = geom.Vec2{X: ax.ZeroX, Y: ax.ZeroY}
		axis.AngleIn = ax.AngleIn
		axis.AngleInternal = ax.AngleInternal
		axis.AngleOut = ax.AngleOut
		for _, c := range ax.Comps {
			prim, err := fromPrimXML(c)
			if err != nil {
				return nil, err
			}
			axis.CompsIncoming = append(axis.CompsIncoming, prim)
		}
	}

	return space, nil
}

// LoadFile is a convenience wrapper around Load that reads from a path.
func LoadFile(path string) (*instrument.Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
