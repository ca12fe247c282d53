package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"emotion-audio/cmd/emotion-audio/cmd/analyze"
	"emotion-audio/cmd/emotion-audio/cmd/bootstrap"
	"emotion-audio/cmd/emotion-audio/cmd/serve"
	"emotion-audio/cmd/emotion-audio/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emotion-audio",
	Short: "Transcribe speech and classify the emotion of what was said",
	Long: `Transcribe speech and classify the emotion of what was said.
- serve exposes POST /analyze-audio and GET /health over HTTP
- analyze runs the same pipeline over local files and prints JSON`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&bootstrap.ConfigPath, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&bootstrap.Verbose, "verbose", "V", false, "debug logging")
}
