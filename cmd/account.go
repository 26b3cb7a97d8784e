package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show remaining remove.bg credits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if cfg.RemoveBG.APIKey == "" {
			return errors.New("api key is required (--api-key or MATTING_REMOVEBG_API_KEY)")
		}
		info, err := newRemoveBG().Account(cmd.Context(), cfg.RemoveBG.APIKey)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
