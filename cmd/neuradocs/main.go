package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"neuradocs/internal/bootstrap"
	ingestiondto "neuradocs/internal/modules/ingestion/dto"
	querydto "neuradocs/internal/modules/query/dto"
	"neuradocs/internal/platform/config"
	"neuradocs/internal/platform/logging"
)

type rootOptions struct {
	configPath string
	backend    string
	timeout    time.Duration
	logLevel   string
	noColor    bool
	jsonOut    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "neuradocs",
		Short:         "Ask questions about a PDF through a document QA backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.backend, "backend", "", "backend base URL (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newExtractCmd(opts))
	root.AddCommand(newAskCmd(opts))
	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.backend != "" {
		cfg.Backend.BaseURL = opts.backend
	}
	if opts.timeout > 0 {
		cfg.Backend.Timeout = opts.timeout
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, cfg.Validate()
}

func loadApp(opts *rootOptions, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(cfg.Log, logOut))
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI, so logs always go to a file.
			if logFile != "" {
				cfg.Log.File = logFile
			}
			if cfg.Log.File == "" {
				cfg.Log.File = "neuradocs.log"
			}
			app, err := bootstrap.New(cfg, logging.New(cfg.Log, nil))
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default neuradocs.log)")
	return cmd
}

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var showChunks bool
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Upload a PDF and print the extracted chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var out ingestiondto.SubmitOutput
			err = withSpinner(cmd, opts, "Extracting...", func() error {
				out, err = app.IngestionCLI.Extract(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printExtraction(cmd.OutOrStdout(), out, showChunks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showChunks, "chunks", true, "print every chunk")
	return cmd
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a question against the document the backend has indexed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var out querydto.AskOutput
			err = withSpinner(cmd, opts, "Thinking...", func() error {
				out, err = app.QueryCLI.AskQuestion(cmd.Context(), strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printAnswer(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "chat --file <pdf>",
		Short: "Extract a PDF, then answer questions read line by line from stdin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var extracted ingestiondto.SubmitOutput
			err = withSpinner(cmd, opts, "Extracting...", func() error {
				extracted, err = app.IngestionCLI.Extract(cmd.Context(), file)
				return err
			})
			if err != nil {
				return err
			}
			printExtraction(cmd.OutOrStdout(), extracted, false)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
			prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
			for {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt("? "))
				if !scanner.Scan() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
					return scanner.Err()
				}
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				var out querydto.AskOutput
				err := withSpinner(cmd, opts, "Thinking...", func() error {
					var askErr error
					out, askErr = app.QueryCLI.AskQuestion(cmd.Context(), line)
					return askErr
				})
				switch {
				case err == nil:
					printAnswer(cmd.OutOrStdout(), out)
				case errors.Is(err, context.Canceled):
					return nil
				default:
					// A failed ask leaves the session usable; keep reading.
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error:"), err)
				}
			}
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "PDF file to extract first")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

// withSpinner runs fn with a spinner on stderr. The spinner is skipped for
// JSON output and when stderr is not a terminal.
func withSpinner(cmd *cobra.Command, opts *rootOptions, label string, fn func() error) error {
	if opts.jsonOut || !isTerminal(cmd.ErrOrStderr()) {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + label
	s.Start()
	defer s.Stop()
	return fn()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func printExtraction(w io.Writer, out ingestiondto.SubmitOutput, showChunks bool) {
	header := color.New(color.FgGreen, color.Bold).SprintFunc()
	muted := color.New(color.Faint).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %s\n", header(fmt.Sprintf("PDF extracted (%d chunks)", len(out.Chunks))), muted(out.FileName+" in "+out.Elapsed.Round(time.Millisecond).String()))
	if out.Degraded {
		_, _ = fmt.Fprintln(w, color.YellowString("backend reply could not be read as a chunk list"))
	}
	if !showChunks {
		return
	}
	if len(out.Chunks) == 0 {
		_, _ = fmt.Fprintln(w, muted("No chunks yet."))
		return
	}
	for i, c := range out.Chunks {
		_, _ = fmt.Fprintf(w, "%s %s\n", color.CyanString("#%d", i+1), c)
	}
}

func printAnswer(w io.Writer, out querydto.AskOutput) {
	if !out.Found {
		_, _ = fmt.Fprintln(w, color.YellowString(out.Answer))
		return
	}
	_, _ = fmt.Fprintln(w, out.Answer)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
