package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/model"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/trainer"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit both models, select the better one and persist the artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := mustConfig()

		table, err := dataset.ReadCSV(c.DatasetPath)
		if err != nil {
			return err
		}
		log.Printf("loaded %d samples from %s", len(table.Records), c.DatasetPath)

		tcfg := trainer.Config{
			Seed:            c.Seed,
			TestRatio:       c.TestRatio,
			Epochs:          c.Epochs,
			LearningRate:    c.LearningRate,
			BatchSize:       c.BatchSize,
			MaxDepth:        c.MaxDepth,
			MinSamplesSplit: c.MinSamplesSplit,
		}
		out, err := trainer.TrainAndSave(table, tcfg, c.ArtifactDir)
		if err != nil {
			return err
		}

		for _, name := range []string{model.LinearRegressionName, model.RegressionTreeName} {
			m := out.Metrics[name]
			log.Printf("%-18s R2=%.4f RMSE=%.4f", name, m.R2, m.RMSE)
		}
		log.Printf("selected %s (run %s), artifacts in %s",
			out.Bundle.Metadata.ModelType, out.Bundle.Metadata.RunID, c.ArtifactDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
