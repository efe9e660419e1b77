// Package convert prepares candidate gene files for searching: every
// candidate must end up as a plain FASTA file, one gene per file.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nelas/blaster/pkg/fasta"
)

const (
	// FastaExt marks files already in plain-sequence format.
	FastaExt = ".fa"
	// GenBankExt marks annotation-format files that need conversion.
	GenBankExt = ".gb"
)

// Normalize scans dir and converts every GenBank file to a sibling FASTA
// file with the same stem, unless that file already exists. FASTA files
// are left untouched; other extensions are logged and skipped. A
// malformed GenBank file only skips that candidate, never the batch.
func Normalize(dir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not list candidates folder: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch filepath.Ext(name) {
		case FastaExt:
			continue
		case GenBankExt:
			if err := convertOne(dir, name); err != nil {
				log.Warn("Conversion failed, skipping candidate",
					zap.String("file", name), zap.Error(err))
			}
		default:
			log.Debug("File type not supported", zap.String("file", name))
		}
	}
	return nil
}

func convertOne(dir, name string) error {
	stem := strings.TrimSuffix(name, GenBankExt)
	target := filepath.Join(dir, stem+FastaExt)

	// Existence wins over freshness: never overwrite a FASTA file.
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	id, seq, err := ParseGenBank(f)
	if err != nil {
		return fmt.Errorf("could not read GenBank record: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if err := fasta.Write(out, []fasta.Record{{ID: id, Seq: seq}}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
