package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dottap/pkg/engine/assets"
	"dottap/pkg/engine/input"
	"dottap/pkg/engine/terminal"
	"dottap/pkg/game/config"
	"dottap/pkg/game/i18n"
	"dottap/pkg/game/plugin"
	"dottap/pkg/game/renderer"
	ebitenrenderer "dottap/pkg/game/renderer/ebiten"
	"dottap/pkg/game/renderer/tui"
)

var (
	// Global flags
	verbose  bool
	language string

	// Command flags
	configPath   string
	outPath      string
	scriptPath   string
	htmlPath     string
	displayWidth int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dottap",
	Short: "Image tap trials with feedback",
	Long: `dottap runs image tap trials: the participant taps images on a canvas,
then sees and hears feedback based on how often each image was tapped.

Each finished trial is written as one JSON line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd opens the trial window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a timeline in a window",
	Long: `Opens a window and presents every trial of the timeline in order.
Escape aborts the run; Enter activates Next; F12 saves an HTML snapshot of
the feedback screen.`,
	RunE: runWindow,
}

// simulateCmd runs a timeline headlessly
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a timeline from a tap script",
	Long: `Runs every trial of the timeline without a window, reading participant
input from a tap script (or stdin):

  tap X Y     pointer-down at device pixel (X, Y)
  next        activate the Next button
  snapshot    write a feedback snapshot (needs --html)
  quit        abort

The canvas is simulated at --display pixels wide, with a 20px margin.`,
	RunE: runSimulate,
}

// infoCmd prints the parameter table
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the trial parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return plugin.WriteInfo(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "",
		fmt.Sprintf("UI language, one of %s (defaults to the timeline's)", strings.Join(i18n.Languages(), ", ")))

	for _, c := range []*cobra.Command{runCmd, simulateCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "", "timeline YAML file")
		c.Flags().StringVarP(&outPath, "out", "o", "", "results file (default stdout)")
		_ = c.MarkFlagRequired("config")
	}
	simulateCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "tap script (default stdin)")
	simulateCmd.Flags().StringVar(&htmlPath, "html", "", "write a feedback snapshot here on entering feedback")
	simulateCmd.Flags().IntVar(&displayWidth, "display", tui.DefaultDisplayWidth, "simulated canvas width in pixels")

	runCmd.Long += bindingsHelp()

	rootCmd.AddCommand(runCmd, simulateCmd, infoCmd)
}

// bindingsHelp lists the input codes of every action.
func bindingsHelp() string {
	byAction := input.GetBindingsByAction()

	var b strings.Builder
	b.WriteString("\n\nBindings:\n")
	for _, act := range []input.Action{input.ActionPointerDown, input.ActionConfirm, input.ActionSnapshot, input.ActionQuit} {
		fmt.Fprintf(&b, "  %-9s %s\n", input.ActionName(act), strings.Join(byAction[act], ", "))
	}
	return b.String()
}

// loadTimeline reads the config and installs the translations.
func loadTimeline() (*config.Timeline, error) {
	tl, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	lang := language
	if lang == "" {
		lang = tl.Language
	}
	if err := i18n.Init(lang); err != nil {
		logger.Warn("Falling back to default language",
			zap.String("language", lang),
			zap.Strings("available", i18n.Languages()),
			zap.Error(err))
		if err := i18n.Init(i18n.DefaultLanguage); err != nil {
			return nil, err
		}
	}
	return tl, nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openOut returns the results writer and its closer.
func openOut(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open results: %w", err)
	}
	return f, f.Close, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	out, closeOut, err := openOut(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	fetcher := assets.NewFetcher(tl.BaseDir)
	sounds := assets.NewEbitenAudio(ctx, fetcher, logger)

	p := plugin.New(plugin.Deps{
		Fetcher: fetcher,
		Audio:   assets.NewAudioCache(sounds.NewSound),
		Renderer: ebitenrenderer.New(ebitenrenderer.Options{
			Title:  tl.Window.Title,
			Width:  tl.Window.Width,
			Height: tl.Window.Height,
			Logger: logger,
		}),
		Logger: logger,
	})
	return p.Run(ctx, tl, plugin.NewJSONLinesHost(out))
}

func runSimulate(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	var script io.Reader = os.Stdin
	interactive := input.IsInteractive(os.Stdin)
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		script = f
		interactive = false
	}

	out, closeOut, err := openOut(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	// Progress goes to stderr so results on stdout stay machine readable.
	progress := cmd.ErrOrStderr()
	width := terminal.DefaultWidth
	colored := false
	if f, ok := progress.(*os.File); ok {
		width = terminal.GetWidth(f)
		colored = terminal.SupportsColor(f)
	}
	renderer.InitColors(colored)

	played := func(url string) {
		logger.Debug("Sound played", zap.String("url", url))
	}

	p := plugin.New(plugin.Deps{
		Fetcher: assets.NewFetcher(tl.BaseDir),
		Audio:   assets.NewAudioCache(assets.FuncSoundFactory(played)),
		Renderer: tui.New(tui.Options{
			Script:       script,
			Out:          progress,
			Interactive:  interactive,
			DisplayWidth: displayWidth,
			Width:        width,
			SnapshotPath: htmlPath,
			Logger:       logger,
		}),
		Logger: logger,
	})
	return p.Run(ctx, tl, plugin.NewJSONLinesHost(out))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
