package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/artifact"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the offline evaluation report with plots",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := mustConfig()

		bundle, err := artifact.Load(c.ArtifactDir)
		if err != nil {
			return err
		}
		table, err := dataset.ReadCSV(c.DatasetPath)
		if err != nil {
			return err
		}
		if err := report.Generate(bundle, table, c.ReportDir); err != nil {
			return err
		}
		log.Printf("report written to %s", c.ReportDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
