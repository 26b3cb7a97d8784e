package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openImageCmd = &cobra.Command{
	Use:   "open-image",
	Short: "Pick an image with the native dialog and print it as a data URI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		res, err := newPicker().OpenImage(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var pickFolderCmd = &cobra.Command{
	Use:     "pick-folder",
	Aliases: []string{"save-matting-image-path"},
	Short:   "Pick a folder with the native dialog and print its path (empty when cancelled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path, err := newPicker().PickFolder(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(openImageCmd)
	rootCmd.AddCommand(pickFolderCmd)
}
