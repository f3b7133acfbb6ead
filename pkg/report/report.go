// Package report renders an offline evaluation document for a trained
// bundle: a markdown summary plus diagnostic plots. It is not part of the
// serving path.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/artifact"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/model"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/predict"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/stats"
)

// Generate scores the whole table with the bundle and writes report.md,
// predicted_vs_actual.png and residuals.png into dir.
func Generate(b *artifact.Bundle, table *dataset.Table, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	X, err := preprocess.Matrix(table.Records, b.Encoders)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if b.Metadata.UseScaling {
		X = b.Scaler.Transform(X)
	}
	pred := b.Model.Predict(X)

	residuals := make([]float64, len(pred))
	for i := range pred {
		residuals[i] = table.Scores[i] - pred[i]
	}

	if err := scatterPlot(table.Scores, pred, filepath.Join(dir, "predicted_vs_actual.png")); err != nil {
		return err
	}
	if err := residualHist(residuals, filepath.Join(dir, "residuals.png")); err != nil {
		return err
	}
	return writeMarkdown(b, table, pred, residuals, filepath.Join(dir, "report.md"))
}

func scatterPlot(actual, predicted []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Predicted vs Actual Quality of Life Score"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	p.Add(scatter)

	ident := plotter.NewFunction(func(x float64) float64 { return x })
	p.Add(ident)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

func residualHist(residuals []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Residual Distribution"
	p.X.Label.Text = "Actual - Predicted"

	vals := make(plotter.Values, len(residuals))
	copy(vals, residuals)
	h, err := plotter.NewHist(vals, 30)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeMarkdown(b *artifact.Bundle, table *dataset.Table, pred, residuals []float64, path string) error {
	meta := b.Metadata
	var sb strings.Builder

	sb.WriteString("# Tanzania Quality of Life Predictor - Evaluation Report\n\n")
	fmt.Fprintf(&sb, "- Run ID: %s\n", meta.RunID)
	fmt.Fprintf(&sb, "- Trained: %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&sb, "- Selected model: **%s**\n", meta.ModelType)
	fmt.Fprintf(&sb, "- Samples: %d train / %d test (seed %d)\n\n", meta.TrainSamples, meta.TestSamples, meta.Seed)

	sb.WriteString("## Held-out metrics\n\n")
	sb.WriteString("| Model | R2 | RMSE |\n|---|---|---|\n")
	for _, name := range []string{model.LinearRegressionName, model.RegressionTreeName} {
		m := meta.Metrics[name]
		fmt.Fprintf(&sb, "| %s | %.4f | %.4f |\n", name, m.R2, m.RMSE)
	}

	sb.WriteString("\n## Full-table residuals\n\n")
	lo, hi := stats.MinMax(residuals)
	fmt.Fprintf(&sb, "- Mean: %.3f\n", stats.Mean(residuals))
	fmt.Fprintf(&sb, "- Std: %.3f\n", stats.Std(residuals))
	fmt.Fprintf(&sb, "- Median: %.3f\n", stats.Median(residuals))
	fmt.Fprintf(&sb, "- Range: [%.3f, %.3f]\n\n", lo, hi)

	sb.WriteString("## Predicted category distribution\n\n")
	counts := map[string]int{}
	for _, v := range pred {
		score := v
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		counts[predict.Categorize(score)]++
	}
	sb.WriteString("| Category | Count |\n|---|---|\n")
	for _, cat := range []string{
		predict.CategoryExcellent, predict.CategoryGood,
		predict.CategoryFair, predict.CategoryNeedsImprovement,
	} {
		fmt.Fprintf(&sb, "| %s | %d |\n", cat, counts[cat])
	}

	sb.WriteString("\n![Predicted vs actual](predicted_vs_actual.png)\n")
	sb.WriteString("\n![Residuals](residuals.png)\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
