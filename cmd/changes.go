package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gmpwatch/gmpwatch/internal/utils"
	"github.com/gmpwatch/gmpwatch/pkg/storage"
)

// changesCmd implements: gmpwatch changes
var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Print recent merge changes from the listings store",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := utils.GetAbsStorePath(viper.GetString("scrape.dbpath"))
		if err != nil {
			return err
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		changes, err := db.ListRecentChanges(cmd.Context(), limit)
		if err != nil {
			return err
		}

		for _, c := range changes {
			fmt.Printf("%s  %-8s  %-12s  %s\n",
				c.OccurredAt.Format("2006-01-02 15:04"), c.ChangeType, c.Source, c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)

	changesCmd.Flags().Int("limit", 50, "Maximum number of changes to print")
}
