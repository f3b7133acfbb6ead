package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/predict"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := mustConfig()

		p, err := predict.New(c.ArtifactDir)
		if err != nil {
			// A missing or corrupt artifact is fatal for the process.
			log.Fatalf("cannot start server: %v", err)
		}
		meta := p.Metadata()
		log.Printf("loaded %s model (run %s, R2=%.4f)",
			meta.ModelType, meta.RunID, meta.Metrics[meta.ModelType].R2)

		log.Printf("listening on %s", c.ListenAddr)
		return server.New(p).Run(c.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
