// Package pipeline drives the whole batch: normalize candidates, BLAST
// each one, parse results, and write the final per-gene files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nelas/blaster/internal/util"
	"github.com/nelas/blaster/pkg/blast"
	"github.com/nelas/blaster/pkg/convert"
	"github.com/nelas/blaster/pkg/db"
	"github.com/nelas/blaster/pkg/fasta"
	"github.com/nelas/blaster/pkg/gene"
)

// ErrDuplicateGene means two candidate files derive the same gene name,
// which would make their output files collide.
var ErrDuplicateGene = errors.New("duplicate gene name")

// Batch holds everything one run needs. History is optional; when nil no
// manifest is written.
type Batch struct {
	CandidatesDir string
	ResultsDir    string
	FinalDir      string
	Database      string
	Mode          blast.Mode
	Runner        *blast.Runner
	History       *db.RunDB
	Log           *zap.Logger
}

// Run processes every candidate sequentially. Setup failures (missing
// folders, duplicate gene names) abort the batch; a failure while
// searching or parsing a single gene is logged and that gene is skipped.
func (b *Batch) Run(ctx context.Context) error {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}

	if !util.DirExists(b.CandidatesDir) {
		return fmt.Errorf("folder %q does not exist", b.CandidatesDir)
	}
	if err := util.EnsureDir(b.ResultsDir); err != nil {
		return err
	}
	if err := util.EnsureDir(b.FinalDir); err != nil {
		return err
	}

	if err := convert.Normalize(b.CandidatesDir, log); err != nil {
		return err
	}

	candidates, err := listCandidates(b.CandidatesDir)
	if err != nil {
		return err
	}

	runID := "run-" + uuid.New().String()
	log.Info("Genes to be BLASTed",
		zap.Int("count", len(candidates)),
		zap.String("db", b.Database),
		zap.String("run", runID))

	// Build all records first so name collisions surface before any
	// external work happens.
	genes := make(map[string]*gene.Record, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		rec := gene.NewRecord(filepath.Join(b.CandidatesDir, c), b.Database)
		if _, ok := genes[rec.GeneName]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateGene, rec.GeneName)
		}
		genes[rec.GeneName] = rec
		order = append(order, rec.GeneName)
	}

	for _, name := range order {
		rec := genes[name]
		if err := b.processGene(ctx, runID, rec, log); err != nil {
			log.Error("Skipping gene",
				zap.String("gene", name), zap.Error(err))
			delete(genes, name)
		}
	}

	return b.writeFinal(order, genes, log)
}

func (b *Batch) processGene(ctx context.Context, runID string, rec *gene.Record, log *zap.Logger) error {
	rec.BlastType = b.Mode
	rec.BlastOutput = filepath.Join(b.ResultsDir, rec.GeneName+".xml")

	cached := util.FileReadable(rec.BlastOutput)

	log.Info("BLASTing gene",
		zap.String("gene", rec.GeneName),
		zap.String("db", b.Database))

	err := b.Runner.Run(ctx, b.Mode, rec.Filepath, b.Database, rec.BlastOutput)
	if err == nil {
		log.Info("Parsing XML", zap.String("gene", rec.GeneName))
		err = rec.ExtractLoci()
	}

	b.recordHistory(ctx, runID, rec, cached, err, log)
	return err
}

func (b *Batch) recordHistory(ctx context.Context, runID string, rec *gene.Record, cached bool, runErr error, log *zap.Logger) {
	if b.History == nil {
		return
	}
	entry := db.GeneRun{
		RunID:     runID,
		GeneName:  rec.GeneName,
		Mode:      string(rec.BlastType),
		Database:  rec.Database,
		Cached:    cached,
		Loci:      len(rec.Loci),
		CreatedAt: time.Now(),
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if err := b.History.Record(ctx, entry); err != nil {
		log.Warn("Could not record run history", zap.Error(err))
	}
}

func (b *Batch) writeFinal(order []string, genes map[string]*gene.Record, log *zap.Logger) error {
	log.Info("Creating final files", zap.String("folder", b.FinalDir))

	for _, name := range order {
		rec, ok := genes[name]
		if !ok {
			continue // failed earlier
		}

		records := make([]fasta.Record, 0, len(rec.Loci))
		for _, l := range rec.Loci {
			records = append(records, fasta.Record{ID: l.ID, Seq: l.Sequence})
		}

		path := filepath.Join(b.FinalDir, name+convert.FastaExt)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fasta.Write(f, records); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// listCandidates returns the FASTA files in dir, sorted by name so the
// processing order does not depend on how the platform lists folders.
func listCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == convert.FastaExt {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
