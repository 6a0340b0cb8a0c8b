package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/gpu"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/preview"
	"github.com/df07/go-progressive-shading/pkg/script"
	"github.com/df07/go-progressive-shading/pkg/visit"
)

//go:embed materials/showcase.zy
var showcaseScript string

// options holds the parsed command line
type options struct {
	scriptPath string
	imageDir   string
	material   string
	output     string
	list       bool
	pack       bool
	spirv      string
	verbose    bool
	render     preview.Config
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stdout io.Writer) (options, error) {
	opts := options{render: preview.DefaultConfig()}

	fs := flag.NewFlagSet("shade", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scriptPath, "script", "", "Material script to load (default: built-in showcase)")
	fs.StringVar(&opts.imageDir, "images", "", "Directory (image \"file\") paths resolve against; empty disables images")
	fs.StringVar(&opts.material, "material", "", "Material to render (default: first defined)")
	fs.StringVar(&opts.output, "out", "", "Output PNG (default: output/<material>/preview_<timestamp>.png)")
	fs.BoolVar(&opts.list, "list", false, "List the script's textures and materials and exit")
	fs.BoolVar(&opts.pack, "pack", false, "Pack every material into a GPU buffer and print its statistics")
	fs.StringVar(&opts.spirv, "spirv", "", "Compile the texture evaluator shader to SPIR-V at this path")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log debug output to stderr")
	fs.IntVar(&opts.render.Width, "width", opts.render.Width, "Image width")
	fs.IntVar(&opts.render.Height, "height", opts.render.Height, "Image height")
	fs.IntVar(&opts.render.SamplesPerPixel, "samples", opts.render.SamplesPerPixel, "Maximum samples per pixel")
	fs.IntVar(&opts.render.MaxDepth, "depth", opts.render.MaxDepth, "Maximum path depth")
	fs.IntVar(&opts.render.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Progressive Shading - material preview")
		fmt.Fprintln(stdout, "Usage: shade [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}
	defer core.SetLogger(nil)

	lib, err := loadLibrary(opts.scriptPath, opts.imageDir)
	if err != nil {
		return err
	}

	if opts.list {
		printLibrary(stdout, lib)
		return nil
	}
	if opts.pack {
		return printPackStats(stdout, lib)
	}
	if opts.spirv != "" {
		return writeSPIRV(stdout, opts.spirv)
	}

	name, m, err := selectMaterial(lib, opts.material)
	if err != nil {
		return err
	}
	for _, f := range visit.Validate(m) {
		fmt.Fprintf(stdout, "warning: %s\n", f)
	}

	fmt.Fprintf(stdout, "Rendering %q (%dx%d)...\n", name, opts.render.Width, opts.render.Height)
	startTime := time.Now()
	img, stats, err := preview.Render(m, opts.render)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render completed in %v\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Fprintf(stdout, "Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", name, fmt.Sprintf("preview_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}

	fmt.Fprintf(stdout, "Preview saved as %s\n", filename)
	return nil
}

// loadLibrary evaluates the script at path, or the built-in showcase when
// path is empty
func loadLibrary(path, imageDir string) (*script.Library, error) {
	source := showcaseScript
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading script: %w", err)
		}
		source = string(data)
		if imageDir == "" {
			imageDir = filepath.Dir(path)
		}
	}

	cfg := script.DefaultConfig()
	cfg.ImageDir = imageDir
	cfg.MaxImageResolution = 2048
	lib, evalErrs, err := script.NewEngine(cfg).Evaluate(source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("script errors:\n  %s", strings.Join(msgs, "\n  "))
	}
	return lib, nil
}

// selectMaterial returns the named material, or the first one defined
func selectMaterial(lib *script.Library, name string) (string, material.Material, error) {
	names := lib.MaterialNames()
	if len(names) == 0 {
		return "", nil, errors.New("script defines no materials")
	}
	if name == "" {
		name = names[0]
	}
	m, ok := lib.Material(name)
	if !ok {
		return "", nil, fmt.Errorf("unknown material %q (available: %s)", name, strings.Join(names, ", "))
	}
	return name, m, nil
}

func printLibrary(w io.Writer, lib *script.Library) {
	fmt.Fprintln(w, "Textures:")
	for _, name := range lib.TextureNames() {
		t, _ := lib.Texture(name)
		fmt.Fprintf(w, "  %-16s %s\n", name, t.Kind())
	}
	fmt.Fprintln(w, "Materials:")
	for _, name := range lib.MaterialNames() {
		m, _ := lib.Material(name)
		n, _ := visit.Count(m)
		fmt.Fprintf(w, "  %-16s %-8s %d nodes\n", name, m.Kind(), n)
	}
}

// printPackStats packs every GPU-compatible material into one buffer
func printPackStats(w io.Writer, lib *script.Library) error {
	packer := gpu.NewPacker()
	for _, name := range lib.MaterialNames() {
		m, _ := lib.Material(name)
		if _, err := packer.PackMaterial(m); err != nil {
			if errors.Is(err, gpu.ErrNotPackable) {
				fmt.Fprintf(w, "skipping %q: %v\n", name, err)
				continue
			}
			return fmt.Errorf("packing %q: %w", name, err)
		}
	}
	fmt.Fprint(w, packer.Buffer().Stats())
	return nil
}

func writeSPIRV(w io.Writer, path string) error {
	spirv, err := gpu.CompileEvaluator()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, spirv, 0644); err != nil {
		return fmt.Errorf("writing SPIR-V: %w", err)
	}
	fmt.Fprintf(w, "Wrote %d bytes of SPIR-V to %s\n", len(spirv), path)
	return nil
}
