// Package gene holds the in-memory aggregate for one candidate gene.
package gene

import (
	"path/filepath"
	"strings"

	"github.com/nelas/blaster/pkg/blast"
)

// Record binds a candidate gene to its file locations, search
// parameters, and the loci extracted from its BLAST results.
type Record struct {
	GeneName    string
	Filepath    string
	Database    string
	BlastType   blast.Mode
	BlastOutput string
	Loci        []blast.Locus
}

// NewRecord derives the gene name from the file name, up to the first
// dot. Two candidate files with the same stem therefore map to the same
// gene name, which the batch rejects up front.
func NewRecord(path, database string) *Record {
	base := filepath.Base(path)
	name := strings.SplitN(base, ".", 2)[0]
	return &Record{
		GeneName: name,
		Filepath: path,
		Database: database,
	}
}

// ExtractLoci parses the BLAST output file and stores the loci on the
// record. A gene with no acceptable hits ends up with zero loci.
func (r *Record) ExtractLoci() error {
	loci, err := blast.ParseResults(r.BlastOutput)
	if err != nil {
		return err
	}
	r.Loci = loci
	return nil
}
