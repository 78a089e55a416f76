package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gmpwatch/gmpwatch/internal/utils"
	"github.com/gmpwatch/gmpwatch/pkg/backup"
	"github.com/gmpwatch/gmpwatch/pkg/listing"
	"github.com/gmpwatch/gmpwatch/pkg/render"
	"github.com/gmpwatch/gmpwatch/pkg/sheet"
)

// renderCmd implements: gmpwatch render
//
// One scheduled run: fetch the sheet CSV, classify and group the rows, back
// up the destination page, then splice the fresh fragment between the
// markers. A failed fetch or a failed write aborts the run; per-row parse
// trouble does not.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the GMP sheet and render it into the destination page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command: '%s'. See 'gmpwatch render --help'", args[0])
		}

		sourceURL := viper.GetString("source.url")
		if url, _ := cmd.Flags().GetString("source"); url != "" {
			sourceURL = url
		}
		if sourceURL == "" {
			return fmt.Errorf("no source URL configured: set source.url in ~/.gmpwatch.yaml or pass --source")
		}

		outputPath := viper.GetString("output.path")
		if p, _ := cmd.Flags().GetString("out"); p != "" {
			outputPath = p
		}

		now := time.Now().In(listing.IST)

		recs, err := sheet.Fetch(sourceURL, nil)
		if err != nil {
			return err
		}
		utils.Log.Infof("Fetched %d rows from sheet", len(recs))

		rows := listing.Normalize(recs, viper.GetString("render.defaulttype"), now)
		if dropped := len(recs) - len(rows); dropped > 0 {
			utils.Log.Debugf("Dropped %d nameless rows", dropped)
		}
		if viper.GetBool("render.dedupe") {
			rows = listing.Dedupe(rows)
		}

		groups := listing.Group(rows)
		groups.SortAndCap(viper.GetInt("render.groupcap"))
		utils.Log.Infof("Classified rows: %d active, %d upcoming, %d closed",
			len(groups.Active), len(groups.Upcoming), len(groups.Closed))

		fragment := render.Fragment(groups, now)

		doc, err := os.ReadFile(outputPath)
		if err != nil {
			return fmt.Errorf("reading destination %s: %w", outputPath, err)
		}

		snapshot, err := backup.Snapshot(outputPath, viper.GetString("backup.dir"), viper.GetInt("backup.keep"), now)
		if err != nil {
			return err
		}
		if snapshot != "" {
			utils.Log.Debugf("Backed up destination to %s", snapshot)
		}

		updated, err := render.Splice(string(doc), fragment)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, []byte(updated), 0o644); err != nil {
			return fmt.Errorf("writing destination %s: %w", outputPath, err)
		}

		utils.Log.Infof("Updated %s", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("source", "", "CSV export URL (overrides source.url)")
	renderCmd.Flags().String("out", "", "Destination HTML file (overrides output.path)")
}
