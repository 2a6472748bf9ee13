package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statementCmd() *cobra.Command {
	var (
		chatID int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Print the journal statement of a chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.UseSupabase() {
				return fmt.Errorf("statement needs SUPABASE_URL and SUPABASE_KEY")
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			teller, err := newTeller(cfg, logger)
			if err != nil {
				return err
			}
			defer teller.Close()

			st, err := teller.Statement(cmd.Context(), chatID, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Text)
			return nil
		},
	}

	cmd.Flags().Int64Var(&chatID, "chat-id", terminalChatID, "chat whose journal to read")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of operations")
	return cmd
}
