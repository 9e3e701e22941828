package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mycv/internal/resume"
	"mycv/internal/richtext"
)

var (
	formatTag     string
	formatStart   int
	formatEnd     int
	formatSection string
	formatItem    string
	formatFile    string
)

var formatCmd = &cobra.Command{
	Use:   "format [text]",
	Short: "Apply inline markup to a character range",
	Long: `Without --file the markup is applied to the text argument and the
result printed. With --file and --section the selection is applied to that
section's content (or to an item's description with --item) and the
updated document is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := richtext.Tag(formatTag)
		if formatFile == "" {
			if len(args) != 1 {
				return fmt.Errorf("text argument is required without --file")
			}
			fmt.Fprintln(cmd.OutOrStdout(), richtext.ApplyInlineMarkup(args[0], formatStart, formatEnd, tag))
			return nil
		}

		doc, _, err := readDocument(formatFile)
		if err != nil {
			return err
		}
		doc, err = richtext.Apply(doc,
			richtext.Target{SectionID: formatSection, ItemID: formatItem},
			richtext.Selection{Start: formatStart, End: formatEnd},
			tag,
		)
		if err != nil {
			return err
		}
		data, err := resume.Encode(doc, resume.FormatFromPath(formatFile))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVar(&formatTag, "tag", "b", "Tag: b, i, u, li or br")
	formatCmd.Flags().IntVar(&formatStart, "start", 0, "Selection start (characters)")
	formatCmd.Flags().IntVar(&formatEnd, "end", 0, "Selection end (characters)")
	formatCmd.Flags().StringVar(&formatFile, "file", "", "Document to edit instead of a text argument")
	formatCmd.Flags().StringVar(&formatSection, "section", "", "Target section id")
	formatCmd.Flags().StringVar(&formatItem, "item", "", "Target item id within the section")
}
