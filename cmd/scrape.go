package cmd

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gmpwatch/gmpwatch/internal/utils"
	"github.com/gmpwatch/gmpwatch/pkg/sheet"
	"github.com/gmpwatch/gmpwatch/pkg/sources"
	"github.com/gmpwatch/gmpwatch/pkg/storage"
)

// scrapeCmd implements: gmpwatch scrape
//
// The source-population job: scrape every known site, merge the rows into
// the SQLite store by name, and export the merged rows as the CSV the
// render job consumes. One broken source is logged and skipped; the run
// only fails when every source fails or the store cannot be written.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape third-party GMP sources into the listings store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command: '%s'. See 'gmpwatch scrape --help'", args[0])
		}

		dbPath, err := utils.GetAbsStorePath(viper.GetString("scrape.dbpath"))
		if err != nil {
			return err
		}

		lock, err := utils.NewStoreLock(dbPath)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		fetched := 0
		for _, src := range sources.All() {
			recs, err := src.Fetch(ctx)
			if err != nil {
				utils.Log.Warnf("Failed to fetch %s: %v", src.Name(), err)
				continue
			}
			fetched++
			utils.Log.Infof("Fetched %d rows from %s", len(recs), src.Name())

			if viper.GetBool("scrape.enrichtype") {
				sources.EnrichType(recs, func(name string) string {
					return "https://www.ipopremium.in/ipo/" + url.PathEscape(name)
				})
			}

			changes, err := db.MergeListings(ctx, src.Name(), recs)
			if err != nil {
				return err
			}
			printMergeChanges(changes)
		}
		if fetched == 0 {
			return fmt.Errorf("every source failed; keeping the previous export")
		}

		recs, err := db.ListRecords(ctx)
		if err != nil {
			return err
		}

		exportPath := viper.GetString("scrape.exportpath")
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("creating export %s: %w", exportPath, err)
		}
		defer f.Close()
		if err := sheet.WriteCSV(f, recs); err != nil {
			return fmt.Errorf("writing export %s: %w", exportPath, err)
		}

		utils.Log.Infof("Exported %d listings to %s", len(recs), exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func printMergeChanges(changes []storage.Change) {
	for _, c := range changes {
		var emoji string
		switch c.ChangeType {
		case "added":
			emoji = "🆕"
		case "updated":
			emoji = "🔄"
		}
		fmt.Printf("%s  %s  %s\n", emoji, c.Source, c.Name)
	}
}
