package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/akmonengine/pivot"
	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/config"
	"github.com/akmonengine/pivot/core"
	"github.com/akmonengine/pivot/scene"
	"github.com/akmonengine/pivot/store"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	sceneFile := flag.String("scene", "", "Path to the YAML scene to edit")
	out := flag.String("out", "", "Write the edited scene here (default: overwrite -scene)")
	dryRun := flag.Bool("dry-run", false, "Run the operation without writing the scene or mesh files")
	op := flag.String("op", "", "Operation: scale, rotation, bounds, frame, save")
	object := flag.String("object", "", "Explicit target object; takes priority over -select")
	selection := flag.String("select", "", "Comma-separated target objects (default: every object with a mesh)")
	x := flag.Float64("x", 0, "Bounding box X offset in percent (bounds)")
	y := flag.Float64("y", 0, "Bounding box Y offset in percent (bounds)")
	z := flag.Float64("z", 0, "Bounding box Z offset in percent (bounds)")
	source := flag.String("source", "", "Object whose frame becomes the new pivot (frame)")
	position := flag.String("position", "", "Explicit pivot world position x,y,z (frame)")
	euler := flag.String("euler", "", "Explicit pivot world rotation in degrees x,y,z (frame)")
	dir := flag.String("dir", "", "Save destination relative to the store root (save)")
	storeRoot := flag.String("store", "", "Store root directory")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")

	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		LogLevel:  *logLevel,
		StoreRoot: *storeRoot,
		StoreDir:  *dir,
	})

	if err := core.SetLevel(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -scene is required.")
		os.Exit(1)
	}

	st, err := store.New(cfg.Store.Root)
	if err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}

	sc, err := scene.Load(*sceneFile, st)
	if err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}

	flagSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })
	offset := cfg.Pivot
	if flagSet["x"] {
		offset.X = *x
	}
	if flagSet["y"] {
		offset.Y = *y
	}
	if flagSet["z"] {
		offset.Z = *z
	}

	var persister pivot.Persister = st
	if *dryRun {
		persister = dryRunStore{st}
	}

	operation, err := buildOperation(*op, sc, persister, cfg, offset, *source, *position, *euler)
	if err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}

	targets, err := resolveTargets(sc, *object, *selection)
	if err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}

	editor := pivot.NewEditor()
	report, err := editor.Apply(targets, operation)
	if err != nil {
		os.Exit(1)
	}
	core.LogInfo("%s: %d updated", report.Operation, len(report.Succeeded))
	if len(report.Skipped) > 0 {
		core.LogWarn("%s: %d skipped", report.Operation, len(report.Skipped))
	}

	if *dryRun || len(report.Succeeded) == 0 {
		return
	}

	dest := *out
	if dest == "" {
		dest = *sceneFile
	}
	if err := sc.Save(dest); err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}
	core.LogInfo("scene written to %s", dest)
}

// dryRunStore validates destinations without writing anything
type dryRunStore struct {
	*store.Store
}

func (s dryRunStore) Save(m *actor.Mesh, dir, name string) (*actor.Mesh, error) {
	core.LogInfo("dry run: would save mesh %q to %s as %s%s", m.Name, dir, name, store.Extension)
	return m, nil
}

func buildOperation(name string, sc *scene.Scene, st pivot.Persister, cfg config.Config, offset config.Pivot, source, position, euler string) (pivot.Operation, error) {
	switch name {
	case "scale":
		return pivot.ApplyScale{}, nil
	case "rotation":
		return pivot.ResetRotation{}, nil
	case "bounds":
		for _, v := range []float64{offset.X, offset.Y, offset.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("bounds offset %v is not a finite percentage", v)
			}
		}
		return pivot.MovePivotByBounds{X: offset.X, Y: offset.Y, Z: offset.Z}, nil
	case "frame":
		if source != "" {
			src := sc.Find(source)
			if src == nil {
				return nil, fmt.Errorf("source object %q not found", source)
			}
			return pivot.MovePivotToFrame{Source: src}, nil
		}
		frame, err := parseFrame(position, euler)
		if err != nil {
			return nil, err
		}
		return pivot.MovePivotToFrame{Frame: frame}, nil
	case "save":
		return pivot.SaveMesh{Store: st, Dir: cfg.Store.Dir}, nil
	case "":
		return nil, errors.New("-op is required")
	default:
		return nil, fmt.Errorf("unknown operation %q", name)
	}
}

func resolveTargets(sc *scene.Scene, object, selection string) ([]*actor.Object, error) {
	var explicit *actor.Object
	if object != "" {
		explicit = sc.Find(object)
		if explicit == nil {
			return nil, fmt.Errorf("object %q not found", object)
		}
	}

	var selected []*actor.Object
	if selection != "" {
		for _, name := range strings.Split(selection, ",") {
			o := sc.Find(strings.TrimSpace(name))
			if o == nil {
				return nil, fmt.Errorf("object %q not found", name)
			}
			selected = append(selected, o)
		}
	} else {
		for _, o := range sc.Objects() {
			if o.Mesh != nil {
				selected = append(selected, o)
			}
		}
	}

	return pivot.ResolveTargets(explicit, selected), nil
}

func parseFrame(position, euler string) (pivot.Frame, error) {
	frame := pivot.Frame{Rotation: mgl64.QuatIdent()}
	if position == "" && euler == "" {
		return frame, errors.New("frame needs -source, -position or -euler")
	}

	if position != "" {
		p, err := parseVec3(position)
		if err != nil {
			return frame, fmt.Errorf("-position: %w", err)
		}
		frame.Position = p
	}
	if euler != "" {
		e, err := parseVec3(euler)
		if err != nil {
			return frame, fmt.Errorf("-euler: %w", err)
		}
		frame.Rotation = actor.EulerToQuat(e)
	}

	return frame, nil
}

func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}

	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return mgl64.Vec3{}, fmt.Errorf("%q is not a finite number", part)
		}
		v[i] = f
	}
	return v, nil
}
