package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/df07/go-tile-raytracer/pkg/config"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/logging"
	"github.com/df07/go-tile-raytracer/pkg/output"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cliFlags holds flag values before they are layered over the config file
type cliFlags struct {
	configPath  string
	verbose     bool
	veryVerbose bool
	quiet       bool
	opts        config.Options
	width       int
	spp         int
	maxDepth    int
}

func newRootCommand() *cobra.Command {
	f := &cliFlags{opts: config.Default()}

	root := &cobra.Command{
		Use:           "raytracer",
		Short:         "Tile based path tracer for sphere scenes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&f.configPath, "config", "", "TOML options file")
	flags.StringVar(&f.opts.Scene, "scene", f.opts.Scene, "builtin scene name or .yaml/.toml scene file")
	flags.IntVar(&f.opts.Threads, "threads", f.opts.Threads, "render worker goroutines")
	flags.Int64Var(&f.opts.Seed, "seed", f.opts.Seed, "random seed for scene generation and sampling")
	flags.IntVar(&f.opts.TileSize, "tile-size", f.opts.TileSize, "tile edge in pixels")
	flags.IntVar(&f.spp, "spp", 0, "samples per pixel (overrides the scene)")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "maximum bounces per path (overrides the scene)")
	flags.IntVar(&f.width, "width", 0, "image width in pixels (overrides the scene)")
	flags.StringVarP(&f.opts.Output, "output", "o", f.opts.Output, "output image (.exr, .png or .jpg)")
	flags.StringVar(&f.opts.Preview, "preview", "", "also write a PNG preview to this path")
	flags.Float64Var(&f.opts.PreviewScale, "preview-scale", f.opts.PreviewScale, "preview size relative to the render, in (0, 1]")
	flags.StringVar(&f.opts.DepthPolicy, "depth-policy", f.opts.DepthPolicy, "color of paths that run out of bounces: sky or black")
	flags.IntVar(&f.opts.ProgressEvery, "progress-every", f.opts.ProgressEvery, "tiles between progress log lines")
	flags.BoolVar(&f.opts.Profiling, "profile", false, "print a hierarchical timing profile")
	flags.StringVar(&f.opts.ProfileSort, "profile-sort", f.opts.ProfileSort, "profile row order: discovery or calls")
	flags.StringVar(&f.opts.LogFile, "log-file", "", "also append logs to this file")
	flags.BoolVar(&f.opts.NoColor, "no-color", false, "disable colored log levels")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log at info level")
	flags.BoolVar(&f.veryVerbose, "vv", false, "log at debug level")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(
		&cobra.Command{
			Use:   "render",
			Short: "Render a scene to an image (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRender(cmd, f)
			},
		},
		&cobra.Command{
			Use:   "scenes",
			Short: "List builtin scenes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listScenes(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// resolveOptions layers defaults, the config file and explicitly set flags
func resolveOptions(cmd *cobra.Command, f *cliFlags) (config.Options, error) {
	opts := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	changed := cmd.Flags().Changed
	set := func(name string, apply func()) {
		if changed(name) {
			apply()
		}
	}
	set("scene", func() { opts.Scene = f.opts.Scene })
	set("threads", func() { opts.Threads = f.opts.Threads })
	set("seed", func() { opts.Seed = f.opts.Seed })
	set("tile-size", func() { opts.TileSize = f.opts.TileSize })
	set("output", func() { opts.Output = f.opts.Output })
	set("preview", func() { opts.Preview = f.opts.Preview })
	set("preview-scale", func() { opts.PreviewScale = f.opts.PreviewScale })
	set("depth-policy", func() { opts.DepthPolicy = f.opts.DepthPolicy })
	set("progress-every", func() { opts.ProgressEvery = f.opts.ProgressEvery })
	set("profile", func() { opts.Profiling = f.opts.Profiling })
	set("profile-sort", func() { opts.ProfileSort = f.opts.ProfileSort })
	set("log-file", func() { opts.LogFile = f.opts.LogFile })
	set("no-color", func() { opts.NoColor = f.opts.NoColor })
	set("spp", func() { opts.Camera.SamplesPerPixel = f.spp })
	set("max-depth", func() { opts.Camera.MaxDepth = f.maxDepth })
	set("width", func() { opts.Camera.ImageWidth = f.width })

	if changed("verbose") || changed("vv") || changed("quiet") {
		opts.LogLevel = logging.LevelFromFlags(f.veryVerbose, f.verbose, f.quiet).String()
	}

	return opts, opts.Validate()
}

func runRender(cmd *cobra.Command, f *cliFlags) error {
	opts, err := resolveOptions(cmd, f)
	if err != nil {
		return err
	}

	// Validate has already accepted these
	level, _ := logging.ParseLevel(opts.LogLevel)
	depthPolicy, _ := integrator.ParseDepthPolicy(opts.DepthPolicy)
	order, _ := profiler.ParseOrder(opts.ProfileSort)

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:   level,
		NoColor: opts.NoColor,
		LogFile: opts.LogFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closeLog()

	if err := render(cmd.Context(), opts, depthPolicy, order, logger, cmd.OutOrStdout()); err != nil {
		logger.Error("Render failed", "error", err)
		return err
	}
	return nil
}

func render(ctx context.Context, opts config.Options, depthPolicy integrator.DepthPolicy, order profiler.Order, logger *slog.Logger, stdout io.Writer) error {
	sc, err := scene.Load(opts.Scene, opts.Seed, opts.Camera)
	if err != nil {
		return err
	}
	logger.Info("Scene loaded",
		"scene", sc.Name,
		"bodies", sc.Store.Len(),
		"materials", sc.Store.MaterialCount())

	var prof *profiler.Profiler
	if opts.Profiling {
		prof = profiler.New(logger)
	}

	film, stats, err := renderer.NewRenderer(sc, renderer.Options{
		Threads:       opts.Threads,
		TileSize:      opts.TileSize,
		Seed:          opts.Seed,
		DepthPolicy:   depthPolicy,
		ProgressEvery: opts.ProgressEvery,
		Logger:        logger,
		Profiler:      prof,
	}).Render(ctx)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", sc.Name, err)
	}
	logger.Debug("Render stats",
		"tiles", stats.Tiles,
		"samples_per_second", fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		"tiles_per_worker", stats.TilesPerWorker)

	outputPath, err := config.ExpandPath(opts.Output)
	if err != nil {
		return err
	}
	if err := output.Write(outputPath, film); err != nil {
		return err
	}
	logger.Info("Image written", "path", outputPath)

	if opts.Preview != "" {
		previewPath, err := config.ExpandPath(opts.Preview)
		if err != nil {
			return err
		}
		if err := output.WritePreview(previewPath, film, opts.PreviewScale); err != nil {
			return err
		}
		logger.Info("Preview written", "path", previewPath)
	}

	if prof.Enabled() {
		return prof.Print(stdout, order)
	}
	return nil
}

func listScenes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.DisplayName, info.Description)
	}
	return tw.Flush()
}
