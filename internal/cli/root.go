package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/engine"
)

var (
	moveFiles  bool
	jobs       int
	verbose    bool
	jsonOutput bool
)

// rootCmd is the root command for datebucket.
var rootCmd = &cobra.Command{
	Use:     "datebucket [flags] <src> <dst>",
	Version: "dev",
	Short:   "Sort files into YYYY-MM-DD folders by modification date",
	Long: `datebucket copies (or moves) every file directly inside <src> into
<dst>/<YYYY-MM-DD>/, where the date is the file's modification time in UTC.

Subdirectories of <src> are skipped. The run stops at the first error; files
already relocated and folders already created are left in place.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runRelocate,
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.Flags().BoolVarP(&moveFiles, "move-files", "m", false, "Move files instead of copying them")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", config.DefaultWorkers(), "Number of files processed concurrently (1 = sequential)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run result in JSON format")
}

func runRelocate(cmd *cobra.Command, args []string) error {
	eng := newEngine(newLogger(cmd.ErrOrStderr(), verbose))

	opts := &config.Options{
		Source:  args[0],
		Dest:    args[1],
		Mode:    config.ModeFromFlag(moveFiles),
		Workers: jobs,
	}

	result, err := eng.Run(cmd.Context(), opts)

	if jsonOutput {
		if result != nil {
			if jerr := outputJSON(cmd.OutOrStdout(), result); jerr != nil && err == nil {
				return jerr
			}
		}
		return err
	}

	if err != nil {
		reportPartial(result)
		return err
	}

	printSummary(result)
	return nil
}

// printSummary prints the outcome of a successful run.
func printSummary(result *engine.RunResult) {
	if result.Planned() == 0 {
		PrintEmptyState(fmt.Sprintf("No files to relocate in %s", result.Source))
		return
	}

	verb := "Copied"
	if result.Mode == config.ModeMove {
		verb = "Moved"
	}
	PrintSuccess(fmt.Sprintf("%s %s into %s",
		verb,
		PrintCount(len(result.Applied), "file", "files"),
		PrintCount(len(result.Plan.Buckets), "bucket", "buckets")))
	PrintLabelValue("Source", result.Source)
	PrintLabelValue("Destination", result.Dest)
	PrintLabelValue("Elapsed", result.Duration().Round(time.Millisecond).String())

	PrintSubsection("Buckets:")
	PrintList(result.Plan.Buckets, 2)

	if len(result.Plan.Skipped) > 0 {
		PrintSubsection("Skipped directories:")
		PrintList(result.Plan.Skipped, 2)
	}
}

// reportPartial warns about side effects left behind by a failed run.
func reportPartial(result *engine.RunResult) {
	if result == nil {
		return
	}
	if len(result.Applied) > 0 {
		PrintWarning(fmt.Sprintf("%d of %d files were relocated before the failure; nothing was rolled back",
			len(result.Applied), result.Planned()))
		return
	}
	if len(result.Buckets) > 0 {
		PrintWarning(fmt.Sprintf("No files were relocated; %s created under %s were left in place",
			PrintCount(len(result.Buckets), "bucket", "buckets"), result.Dest))
	}
}

// Execute executes the root command.
// SIGINT and SIGTERM cancel the run; work already done is kept.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
