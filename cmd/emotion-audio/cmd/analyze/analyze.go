package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"emotion-audio/cmd/emotion-audio/cmd/bootstrap"
	"emotion-audio/internal/app/batch"
)

var parallel int
var progress bool

func init() {
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 2, "number of files analyzed concurrently")
	Cmd.Flags().BoolVar(&progress, "progress", false, "force the progress bar even when stderr is not a terminal")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Transcribe and classify local audio files",
	Long: `Transcribe and classify local audio files using the configured backends.

Results are printed to stdout as a JSON array in argument order. A file that
fails validation or processing carries an "error" field instead of a result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, application, cleanup, err := bootstrap.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var bar *batch.Progress
		if batch.ShouldShowProgress(len(args), progress) {
			bar = batch.NewProgress(cmd.ErrOrStderr())
		}
		runner := batch.NewRunner(application.Service, application.Validator, parallel, bar, application.Logger)
		results := runner.Run(ctx, args)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}

		if failed := batch.Failed(results); failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(results))
		}
		return nil
	},
}
