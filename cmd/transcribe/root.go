package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Monophonic melody transcription",
	Long: `Converts a monophonic pitch contour into discrete, rhythmically
quantized notes and maps them to an instrument's written pitch.`,
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
