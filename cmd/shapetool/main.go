// shapetool inspects tessellated primitives, OBJ meshes and scene files
// without opening a window.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/tessera/pkg/formats"
	"github.com/Faultbox/tessera/pkg/scenegraph"
	"github.com/Faultbox/tessera/pkg/shapes"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Usage: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "stats":
		return cmdStats(args, out)
	case "dump":
		return cmdDump(args, out)
	case "obj":
		return cmdOBJ(args, out)
	case "scene":
		return cmdScene(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	}
	printUsage(os.Stderr)
	return fmt.Errorf("unknown command: %s", command)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `shapetool - tessellation inspection utility

Usage:
  shapetool <command> [options]

Commands:
  stats [-layout pntt] <kind> [p1 p2]   Show buffer sizes for a primitive
  dump  [-layout pntt] <kind> [p1 p2]   Write the vertex buffer as CSV
  obj   [-layout pntt] <file.obj>       Show mesh and normal recovery info
  scene <file>                          Show the flattened render list

Kinds: cube, cone, cylinder, sphere

Examples:
  shapetool stats sphere 10 20
  shapetool dump -layout pnt cube 2 > cube.csv
  shapetool obj models/teapot.obj
  shapetool scene scenes/lights.yaml`)
}

// generate parses "<kind> [p1 p2]" and tessellates the primitive.
func generate(fs *flag.FlagSet, layoutName string) (shapes.Shape, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("%w: shapetool %s <kind> [p1 p2]", errUsage, fs.Name())
	}
	kind, err := shapes.ParseKind(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	if kind == shapes.Mesh {
		return nil, errors.New("meshes come from files, use the obj command")
	}
	layout, err := shapes.ParseLayout(layoutName)
	if err != nil {
		return nil, err
	}

	p := shapes.Params{Param1: 5, Param2: 5}
	for i, dst := range []*int{&p.Param1, &p.Param2} {
		if fs.NArg() <= i+1 {
			break
		}
		if *dst, err = strconv.Atoi(fs.Arg(i + 1)); err != nil {
			return nil, fmt.Errorf("param%d: %w", i+1, err)
		}
	}

	s := shapes.New(kind, layout)
	s.UpdateVertexData(p.Param1, p.Param2)
	return s, nil
}

func cmdStats(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	layout := fs.String("layout", "pntt", "Vertex layout (pn, pnt, pntt)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := generate(fs, *layout)
	if err != nil {
		return err
	}
	printInfo(out, shapes.Stats(s))
	return nil
}

func printInfo(out io.Writer, info shapes.Info) {
	fmt.Fprintf(out, "Kind:      %s\n", info.Kind)
	if info.Name != "" {
		fmt.Fprintf(out, "Name:      %s\n", info.Name)
	}
	if info.Kind != shapes.Mesh {
		fmt.Fprintf(out, "Params:    %d %d\n", info.Params.Param1, info.Params.Param2)
	}
	fmt.Fprintf(out, "Layout:    %s (%d floats/vertex)\n", info.Layout, info.Layout.Stride())
	fmt.Fprintf(out, "Floats:    %d\n", info.Floats)
	fmt.Fprintf(out, "Vertices:  %d\n", info.Vertices)
	fmt.Fprintf(out, "Triangles: %d\n", info.Triangles)
}

func cmdDump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	layout := fs.String("layout", "pntt", "Vertex layout (pn, pnt, pntt)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := generate(fs, *layout)
	if err != nil {
		return err
	}
	return writeCSV(out, s)
}

// writeCSV writes one row per vertex with a header naming each component.
func writeCSV(out io.Writer, s shapes.Shape) error {
	header := []string{"x", "y", "z", "nx", "ny", "nz"}
	if s.Layout().HasUV() {
		header = append(header, "u", "v")
	}
	if s.Layout().HasTangent() {
		header = append(header, "tx", "ty", "tz")
	}

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	data := s.VertexData()
	stride := s.Layout().Stride()
	row := make([]string, stride)
	for i := 0; i+stride <= len(data); i += stride {
		for j := range row {
			row[j] = strconv.FormatFloat(float64(data[i+j]), 'g', -1, 32)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func cmdOBJ(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("obj", flag.ContinueOnError)
	layoutName := fs.String("layout", "pntt", "Vertex layout (pn, pnt, pntt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: shapetool obj <file.obj>", errUsage)
	}
	layout, err := shapes.ParseLayout(*layoutName)
	if err != nil {
		return err
	}

	obj, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		return err
	}
	m, isolated := obj.Mesh(fs.Arg(0), layout)

	fmt.Fprintf(out, "File:      %s\n", fs.Arg(0))
	fmt.Fprintf(out, "Positions: %d\n", len(obj.Positions))
	fmt.Fprintf(out, "Normals:   %d\n", len(obj.Normals))
	fmt.Fprintf(out, "TexCoords: %d\n", len(obj.TexCoords))
	fmt.Fprintf(out, "Faces:     %d\n", len(obj.Faces))
	if obj.HasNormals() {
		fmt.Fprintln(out, "Normals:   declared")
	} else {
		fmt.Fprintf(out, "Normals:   recovered (%d isolated vertices)\n", isolated)
	}
	fmt.Fprintln(out)
	printInfo(out, shapes.Stats(m))
	return nil
}

func cmdScene(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: shapetool scene <file>", errUsage)
	}

	s, err := formats.LoadScene(args[0])
	if err != nil {
		return err
	}
	data := scenegraph.Build(s)

	cam := data.Camera
	fmt.Fprintf(out, "Scene:   %s\n", args[0])
	fmt.Fprintf(out, "Globals: ka=%g kd=%g ks=%g kt=%g\n", data.Globals.Ka, data.Globals.Kd, data.Globals.Ks, data.Globals.Kt)
	fmt.Fprintf(out, "Camera:  pos=%v look=%v up=%v\n", cam.Pos, cam.Look, cam.Up)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Shapes (%d):\n", len(data.Shapes))
	for i, sh := range data.Shapes {
		name := sh.Primitive.Kind.String()
		if sh.Primitive.Kind == shapes.Mesh {
			name += " " + sh.Primitive.MeshFile
		}
		t := sh.CTM
		fmt.Fprintf(out, "  %3d  %-24s at (%g, %g, %g)\n", i, name, t[12], t[13], t[14])
	}

	fmt.Fprintf(out, "Lights (%d):\n", len(data.Lights))
	for _, l := range data.Lights {
		fmt.Fprintf(out, "  %3d  %-12s pos=%v dir=%v\n", l.ID, l.Kind, l.Pos, l.Dir)
	}
	return nil
}
