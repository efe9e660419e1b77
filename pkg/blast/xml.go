package blast

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// ParseError reports a missing or corrupt result file. It aborts the
// affected gene only, not the batch.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse BLAST results %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Locus is one extracted target subsequence, derived from a single
// alignment of a single hit.
type Locus struct {
	ID       string
	Sequence string
}

type output struct {
	XMLName xml.Name `xml:"BlastOutput"`
	Hits    []hit    `xml:"BlastOutput_iterations>Iteration>Iteration_hits>Hit"`
}

type hit struct {
	Num       int    `xml:"Hit_num"`
	ID        string `xml:"Hit_id"`
	Def       string `xml:"Hit_def"`
	Accession string `xml:"Hit_accession"`
	Hsps      []hsp  `xml:"Hit_hsps>Hsp"`
}

type hsp struct {
	Num      int     `xml:"Hsp_num"`
	BitScore float64 `xml:"Hsp_bit-score"`
	Evalue   float64 `xml:"Hsp_evalue"`
	HitFrom  int     `xml:"Hsp_hit-from"`
	HitTo    int     `xml:"Hsp_hit-to"`
	Hseq     string  `xml:"Hsp_hseq"`
}

// ParseResults reads one gene's XML result file and extracts a locus per
// alignment, in document order. Every hit is kept and nothing is
// deduplicated; downstream consumers decide what to filter. The locus ID
// combines the hit name with the hit coordinates of the alignment, and
// the sequence is the aligned target subsequence with gap characters
// removed.
func ParseResults(path string) ([]Locus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var doc output
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var loci []Locus
	for _, h := range doc.Hits {
		name := hitName(h)
		for _, a := range h.Hsps {
			loci = append(loci, Locus{
				ID:       fmt.Sprintf("%s:%d-%d", name, a.HitFrom, a.HitTo),
				Sequence: strings.ReplaceAll(a.Hseq, "-", ""),
			})
		}
	}
	return loci, nil
}

// hitName picks a human-meaningful identifier for a hit. Databases built
// without parsed sequence IDs put the real name in Hit_def and leave
// Hit_id as an ordinal gnl|BL_ORD_ID|n reference.
func hitName(h hit) string {
	if fields := strings.Fields(h.Def); len(fields) > 0 {
		return fields[0]
	}
	if h.Accession != "" {
		return h.Accession
	}
	return h.ID
}
