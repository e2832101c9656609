// Command planardump reads a GeoJSON FeatureCollection (or a bare
// geometry) from stdin, builds a planar graph from every feature's
// geometry with every Options flag enabled, and prints a human-readable
// summary of the resulting nodes, edges, faces, rings, and per-edge
// source attribution.
//
// Usage:
//
//	planardump < features.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-spatial/planargraph/pkg/planar"
)

func main() {
	input := flag.String("in", "-", "path to a GeoJSON file, or - for stdin")
	flag.Parse()

	r := os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("planardump: %v", err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		log.Fatalf("planardump: reading input: %v", err)
	}

	geoms, err := parseGeoJSON(raw)
	if err != nil {
		log.Fatalf("planardump: %v", err)
	}

	b := planar.NewBuilder(planar.Options{
		BuildNodes:    true,
		BuildFaces:    true,
		BuildTopology: true,
		BuildSources:  true,
	})
	for _, g := range geoms {
		if _, err := b.AddGeometry(g); err != nil {
			log.Fatalf("planardump: adding geometry: %v", err)
		}
	}

	graph, err := b.Finalize()
	if err != nil {
		log.Fatalf("planardump: %v", err)
	}

	dump(graph)
}

func dump(g *planar.Graph) {
	fmt.Printf("=== Nodes (%d) ===\n", len(g.Nodes()))
	for i, n := range g.Nodes() {
		fmt.Printf("%4d: (%g, %g)\n", i, n.Point.X, n.Point.Y)
	}

	fmt.Printf("\n=== Edges (%d) ===\n", len(g.Edges()))
	for i, e := range g.Edges() {
		fmt.Printf("%4d: %d point(s), start=%s, end=%s, left=%s, right=%s, sources=%v\n",
			i, len(e.Geom), indexString(e.Start), indexString(e.End), indexString(e.Left), indexString(e.Right), e.Sources)
	}

	fmt.Printf("\n=== Rings (%d) ===\n", len(g.Rings()))
	for i, r := range g.Rings() {
		fmt.Printf("%4d: clockwise=%v, %d edge(s)\n", i, r.Clockwise, len(r.Edges))
	}

	fmt.Printf("\n=== Faces (%d) ===\n", len(g.Faces()))
	for i, f := range g.Faces() {
		fmt.Printf("%4d: exterior=%s, holes=%v\n", i, indexString(f.ExteriorRing), f.InteriorRings)
	}
}

func indexString(o planar.OptionalIndex) string {
	if i, ok := o.Get(); ok {
		return fmt.Sprintf("%d", i)
	}
	return "-"
}

// geoJSONGeometry is the minimal shape planardump understands: a
// Feature, a FeatureCollection, or a bare geometry, each carrying
// standard GeoJSON Type/Coordinates/Geometries/Features fields.
type geoJSONGeometry struct {
	Type        string            `json:"type"`
	Coordinates json.RawMessage   `json:"coordinates"`
	Geometries  []geoJSONGeometry `json:"geometries"`
	Geometry    *geoJSONGeometry  `json:"geometry"`
	Features    []geoJSONGeometry `json:"features"`
}

func parseGeoJSON(raw []byte) ([]planar.Geometry, error) {
	var top geoJSONGeometry
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decoding GeoJSON: %w", err)
	}
	return flattenFeatures(top)
}

func flattenFeatures(g geoJSONGeometry) ([]planar.Geometry, error) {
	switch g.Type {
	case "FeatureCollection":
		var out []planar.Geometry
		for _, f := range g.Features {
			geoms, err := flattenFeatures(f)
			if err != nil {
				return nil, err
			}
			out = append(out, geoms...)
		}
		return out, nil
	case "Feature":
		if g.Geometry == nil {
			return nil, nil
		}
		return flattenFeatures(*g.Geometry)
	default:
		geom, err := toGeometry(g)
		if err != nil {
			return nil, err
		}
		return []planar.Geometry{geom}, nil
	}
}

func toGeometry(g geoJSONGeometry) (planar.Geometry, error) {
	switch g.Type {
	case "Point":
		var c [2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		return planar.NewPointGeometry(planar.Point{X: c[0], Y: c[1]}), nil

	case "MultiPoint":
		var c [][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		return planar.Geometry{Kind: planar.KindMultiPoint, Points: toPoints(c)}, nil

	case "LineString":
		var c [][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		return planar.NewLineStringGeometry(toPoints(c)), nil

	case "MultiLineString":
		var c [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		lines := make([][]planar.Point, len(c))
		for i, line := range c {
			lines[i] = toPoints(line)
		}
		return planar.Geometry{Kind: planar.KindMultiLineString, Lines: lines}, nil

	case "Polygon":
		var c [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		return planar.NewPolygonGeometry(toRings(c)), nil

	case "MultiPolygon":
		var c [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return planar.Geometry{}, err
		}
		polys := make([][][]planar.Point, len(c))
		for i, poly := range c {
			polys[i] = toRings(poly)
		}
		return planar.NewMultiPolygonGeometry(polys), nil

	case "GeometryCollection":
		children := make([]planar.Geometry, len(g.Geometries))
		for i, child := range g.Geometries {
			geom, err := toGeometry(child)
			if err != nil {
				return planar.Geometry{}, err
			}
			children[i] = geom
		}
		return planar.NewCollectionGeometry(children), nil

	default:
		return planar.Geometry{}, fmt.Errorf("unsupported GeoJSON geometry type %q", g.Type)
	}
}

func toPoints(c [][2]float64) []planar.Point {
	out := make([]planar.Point, len(c))
	for i, p := range c {
		out[i] = planar.Point{X: p[0], Y: p[1]}
	}
	return out
}

func toRings(c [][][2]float64) [][]planar.Point {
	out := make([][]planar.Point, len(c))
	for i, ring := range c {
		out[i] = toPoints(ring)
	}
	return out
}
