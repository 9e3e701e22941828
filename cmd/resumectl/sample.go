package main

import (
	"github.com/spf13/cobra"

	"mycv/internal/resume"
)

var sampleFormat string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the sample document new resumes start from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := resume.Encode(resume.Sample(), resume.Format(sampleFormat))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", string(resume.FormatJSON), "Output format: json or yaml")
}
