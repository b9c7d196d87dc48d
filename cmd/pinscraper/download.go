package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pinscraper/internal/runner"
	"pinscraper/pkg/config"
	"pinscraper/pkg/logger"
	"pinscraper/pkg/pinterest"
	"pinscraper/pkg/progress"
	"pinscraper/pkg/scraper"
	"pinscraper/pkg/ui"
	"pinscraper/pkg/ui/tui"
)

var (
	outputDir  string
	folderName string
	timeout    time.Duration
	userAgent  string
	useTUI     bool
	notify     bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <pin-url>",
	Short: "Download all media from a pin page",
	Long: `Download every image and video referenced by a Pinterest pin page.

Examples:
  pinscraper download https://www.pinterest.com/pin/123456789/
  pinscraper download https://pinterest.com/pin/123456789/ --tui
  pinscraper download https://pinterest.com/pin/123456789/ -o ~/Pictures --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	addDownloadFlags(downloadCmd)
}

func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "parent directory of the save folder (default: next to the executable)")
	cmd.Flags().StringVar(&folderName, "folder-name", "", "name of the save folder (default: pinterest_downloads)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP timeout per request, 0 for none")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header sent to Pinterest")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "use the interactive terminal interface")
	cmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")
}

func downloadFlags(cmd *cobra.Command) map[string]interface{} {
	flags := globalFlags(cmd)
	if cmd.Flags().Changed("output") {
		flags["output"] = outputDir
	}
	if cmd.Flags().Changed("folder-name") {
		flags["folder-name"] = folderName
	}
	if cmd.Flags().Changed("timeout") {
		flags["timeout"] = timeout
	}
	if cmd.Flags().Changed("user-agent") {
		flags["user-agent"] = userAgent
	}
	if cmd.Flags().Changed("tui") {
		flags["tui"] = useTUI
	}
	if cmd.Flags().Changed("notify") {
		flags["notify"] = notify
	}
	return flags
}

func runDownload(cmd *cobra.Command, pinURL string) error {
	cfg, err := config.Load(configFile, downloadFlags(cmd))
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	ui.SetColor(!cfg.UI.NoColor && stdoutTTY)

	if cfg.UI.Interactive && !stdoutTTY {
		ui.PrintError("The interactive interface needs a terminal", "drop --tui when piping output")
		return fmt.Errorf("--tui requires a terminal")
	}

	if err := initLogger(cfg); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		return err
	}
	log := logger.GetLogger()

	if !pinterest.IsPinURL(pinURL) {
		ui.PrintError("Not a Pinterest pin URL", pinURL)
		return fmt.Errorf("invalid pin URL %q", pinURL)
	}

	saveFolder, err := cfg.SaveFolder()
	if err != nil {
		ui.PrintError("Failed to resolve save folder", err.Error())
		return err
	}

	s, err := scraper.New(cfg, saveFolder, log)
	if err != nil {
		ui.PrintError("Failed to initialize scraper", err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(ctx, s, log)
	r.Start()
	defer r.Stop()

	ch := progress.NewChannel()
	job, err := r.Submit(pinURL, ch)
	if err != nil {
		ui.PrintError("Failed to start download", err.Error())
		return err
	}

	logger.WithFields(map[string]interface{}{
		"job_id":      job.ID,
		"pin_url":     pinURL,
		"save_folder": saveFolder,
	}).Info("Download submitted")

	var res runner.Result
	if cfg.UI.Interactive {
		res, err = runInteractive(ch, r, pinURL, saveFolder, stop)
		if err != nil {
			logger.WithError(err).Error("Interactive shell failed")
			return err
		}
	} else {
		shell := ui.NewShell(saveFolder, ui.NewNotifier(cfg.UI.Notify))
		shell.Banner()
		shell.Watch(ch)
		res = <-r.Results()
		shell.Finish(res.Summary, res.Err)
	}

	logger.WithFields(map[string]interface{}{
		"job_id":    job.ID,
		"found":     res.Summary.Found,
		"succeeded": res.Summary.Succeeded,
		"failed":    res.Summary.Failed,
		"duration":  res.Duration.String(),
	}).Info("Download finished")

	if res.Err != nil {
		return fmt.Errorf("download failed: %w", res.Err)
	}
	return nil
}

// runInteractive drives the bubbletea shell. The program owns the terminal
// until the user quits, so the result is collected on a separate goroutine.
func runInteractive(ch *progress.Channel, r *runner.Runner, pinURL, saveFolder string, cancel context.CancelFunc) (runner.Result, error) {
	terminal := tui.NewTUI(pinURL, saveFolder, cancel)

	resultCh := make(chan runner.Result, 1)
	go func() {
		terminal.Watch(ch)
		res := <-r.Results()
		terminal.Finish(res.Summary, res.Err)
		resultCh <- res
	}()

	if err := terminal.Start(); err != nil {
		cancel()
		return runner.Result{}, err
	}

	// Quitting mid-run cancels the context; wait for the pipeline to unwind
	return <-resultCh, nil
}

// initLogger keeps log output off the terminal while the TUI owns it
func initLogger(cfg *config.Config) error {
	if cfg.UI.Interactive && cfg.Logging.File == "" {
		return logger.InitializeWithWriter(&cfg.Logging, io.Discard)
	}
	return logger.Initialize(&cfg.Logging)
}
