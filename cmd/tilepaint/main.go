// tilepaint replays tile paint/build sessions headless and exposes the
// snapping helpers on the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/tilepaint/internal/config"
	"github.com/Faultbox/tilepaint/internal/logger"
	"github.com/Faultbox/tilepaint/internal/mesh"
	"github.com/Faultbox/tilepaint/internal/orient"
	"github.com/Faultbox/tilepaint/internal/scenario"
	"github.com/Faultbox/tilepaint/internal/session"
	"github.com/Faultbox/tilepaint/pkg/grid"
)

var flagOBJ = flag.String("obj", "", "Write the resulting mesh to an OBJ file (run)")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Debug("config loaded", zap.String("mode", cfg.Tool.Mode), zap.Float64("world_pixels", cfg.Grid.WorldPixels))

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "run":
		err = cmdRun(cfg, args)
	case "snap":
		err = cmdSnap(cfg, args)
	case "resolve":
		err = cmdResolve(args)
	case "init-config":
		err = cmdInitConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tilepaint - tile based mesh paint/build tool

Usage:
  tilepaint [flags] <command> [args]

Commands:
  run <scenario.yaml>          Replay a scripted tool session
  snap <x> <y> <z>            Snap a point on the default +Z plane to the grid
  resolve <fx fy fz ux uy uz>  Snap a view direction and up to a construction plane
  init-config [file]           Write the effective config (default: user config dir)

Flags:
  -config <file>       Config file (default ./tilepaint.yaml)
  -debug               Debug logging
  -mode paint|build    Initial tool mode
  -lock-normal         Keep the construction plane normal fixed
  -world-pixels <n>    Pixels per world unit
  -obj <file>          Write the resulting mesh as OBJ (run)

Examples:
  tilepaint run wall.yaml
  tilepaint -obj wall.obj run wall.yaml
  tilepaint -world-pixels 100 snap 0.5 0.1 0
  tilepaint resolve 0 0 -1 0 1 0
  tilepaint -mode paint -lock-normal init-config`)
}

func cmdRun(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tilepaint run <scenario.yaml>")
	}

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	settings, err := session.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	r, err := scenario.NewRunner(sc, settings)
	if err != nil {
		return err
	}

	steps, err := r.Run()
	if err != nil {
		return err
	}
	logger.Info("scenario replayed",
		zap.String("scenario", args[0]),
		zap.Int("steps", len(steps)),
		zap.Int("faces", len(r.Mesh.Faces)),
	)

	for _, st := range steps {
		line := fmt.Sprintf("%3d %-11s %-12s %-17s", st.Index, st.Kind, st.Response, st.Result.Outcome)
		if st.Result.Face >= 0 {
			line += fmt.Sprintf(" face=%d", st.Result.Face)
		}
		if st.Err != nil {
			line += " error=" + st.Err.Error()
			logger.Warn("scenario step failed", zap.Int("step", st.Index), zap.String("kind", st.Kind), zap.Error(st.Err))
		}
		fmt.Println(line)
	}
	fmt.Printf("\nObject:   %s\n", r.Mesh.Name)
	fmt.Printf("Faces:    %d\n", len(r.Mesh.Faces))
	fmt.Printf("Vertices: %d\n", len(r.Mesh.Vertices))
	fmt.Printf("Plane:    %s normal=%v up=%v\n", r.Session.Orientation.Label, r.Session.Orientation.Normal, r.Session.Orientation.Up)

	if *flagOBJ != "" {
		if err := writeOBJ(r.Mesh, *flagOBJ); err != nil {
			return err
		}
		fmt.Printf("Wrote:    %s\n", *flagOBJ)
	}
	return nil
}

func writeOBJ(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func cmdInitConfig(cfg *config.Config, args []string) error {
	path := config.UserConfigPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	fmt.Printf("Wrote: %s\n", path)
	return nil
}

func cmdSnap(cfg *config.Config, args []string) error {
	p, err := parseVec(args, 3)
	if err != nil {
		return fmt.Errorf("usage: tilepaint snap <x> <y> <z>: %w", err)
	}

	st := orient.NewState()
	spec := grid.Spec{
		CellWidth:   cfg.Grid.DefaultCell[0],
		CellHeight:  cfg.Grid.DefaultCell[1],
		WorldPixels: cfg.Grid.WorldPixels,
	}
	cell := grid.SnapSpec(p, mgl64.Vec3{}, st.Right(), st.Up, spec)

	fmt.Printf("Cell:   (%d, %d)\n", cell.Column, cell.Row)
	fmt.Printf("Corner: %v\n", cell.Corner)
	fmt.Printf("Far:    %v\n", cell.Corner.Add(cell.Right).Add(cell.Up))
	return nil
}

func cmdResolve(args []string) error {
	v, err := parseFloats(args, 6)
	if err != nil {
		return fmt.Errorf("usage: tilepaint resolve <fx fy fz ux uy uz>: %w", err)
	}

	st := orient.NewState()
	if !orient.NewResolver().Resolve(st, mgl64.Vec3{v[0], v[1], v[2]}, mgl64.Vec3{v[3], v[4], v[5]}) {
		return fmt.Errorf("view is degenerate, plane unchanged")
	}
	fmt.Printf("Axis:   %s\n", st.Label)
	fmt.Printf("Normal: %v\n", st.Normal)
	fmt.Printf("Up:     %v\n", st.Up)
	fmt.Printf("Right:  %v\n", st.Right())
	return nil
}

func parseVec(args []string, n int) (mgl64.Vec3, error) {
	v, err := parseFloats(args, n)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
