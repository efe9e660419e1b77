package gene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"SimpleName", "candidates/geneA.fa", "geneA"},
		{"AbsolutePath", "/data/candidates/wnt2.fa", "wnt2"},
		{"MultipleDots", "candidates/geneA.v2.fa", "geneA"},
		{"GenBankStem", "candidates/geneB.gb", "geneB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(tt.path, "transcriptome.fasta")
			if rec.GeneName != tt.expected {
				t.Errorf("Expected gene name %q, got %q", tt.expected, rec.GeneName)
			}
			if rec.Filepath != tt.path {
				t.Errorf("Expected filepath %q, got %q", tt.path, rec.Filepath)
			}
			if rec.Database != "transcriptome.fasta" {
				t.Errorf("Unexpected database: %q", rec.Database)
			}
		})
	}
}

func TestExtractLociMissingResults(t *testing.T) {
	rec := NewRecord("candidates/geneA.fa", "db")
	rec.BlastOutput = filepath.Join(t.TempDir(), "geneA.xml")

	if err := rec.ExtractLoci(); err == nil {
		t.Fatal("Expected an error for a missing result file")
	}
	if len(rec.Loci) != 0 {
		t.Errorf("Loci should stay empty on failure, got %d", len(rec.Loci))
	}
}

func TestExtractLociEmptyResults(t *testing.T) {
	// A search with no hits yields a record with zero loci, not an error.
	empty := `<?xml version="1.0"?>
<BlastOutput>
  <BlastOutput_iterations>
    <Iteration>
      <Iteration_num>1</Iteration_num>
      <Iteration_hits>
      </Iteration_hits>
    </Iteration>
  </BlastOutput_iterations>
</BlastOutput>
`
	path := filepath.Join(t.TempDir(), "geneA.xml")
	if err := os.WriteFile(path, []byte(empty), 0644); err != nil {
		t.Fatal(err)
	}

	rec := NewRecord("candidates/geneA.fa", "db")
	rec.BlastOutput = path
	if err := rec.ExtractLoci(); err != nil {
		t.Fatalf("ExtractLoci failed: %v", err)
	}
	if len(rec.Loci) != 0 {
		t.Errorf("Expected zero loci, got %d", len(rec.Loci))
	}
}
