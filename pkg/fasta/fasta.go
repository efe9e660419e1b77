// Package fasta contains minimal helpers for the plain-sequence format
// used throughout the pipeline. Parsing is kept simple and conservative.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record represents a single FASTA record (header and sequence).
type Record struct {
	ID  string
	Seq string
}

// Parse reads FASTA records from r. Lines beginning with '>' denote
// headers; sequence lines are concatenated, blank lines are ignored.
// Sequences are written unwrapped, so lines can get long.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var records []Record
	var current Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			if current.ID != "" {
				records = append(records, current)
			}
			current = Record{ID: strings.TrimSpace(line[1:])}
		} else if line != "" {
			current.Seq += line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current.ID != "" {
		records = append(records, current)
	}
	return records, nil
}

// Write writes records with a blank line between them, the format of the
// final per-gene output files.
func Write(w io.Writer, records []Record) error {
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n\n", rec.ID, rec.Seq); err != nil {
			return err
		}
	}
	return nil
}
