package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/trainer"
)

func TestGenerateWritesReportAndPlots(t *testing.T) {
	table := dataset.Generate(600, 42)
	cfg := trainer.DefaultConfig()
	cfg.Epochs = 100
	out, err := trainer.Train(table, cfg)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "report")
	if err := Generate(out.Bundle, table, dir); err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, name := range []string{"predicted_vs_actual.png", "residuals.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatalf("report.md: %v", err)
	}
	body := string(md)
	for _, want := range []string{
		out.Bundle.Metadata.RunID,
		out.Bundle.Metadata.ModelType,
		"Held-out metrics",
		"predicted_vs_actual.png",
		"residuals.png",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("report.md is missing %q", want)
		}
	}
}
