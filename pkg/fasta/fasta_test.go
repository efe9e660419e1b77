package fasta

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := ">seq1 description\nATGC\natgc\n\n>seq2\nGGGG\nCCCC\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "seq1 description" {
		t.Errorf("Unexpected ID: %q", records[0].ID)
	}
	if records[0].Seq != "ATGCatgc" {
		t.Errorf("Unexpected sequence: %q", records[0].Seq)
	}
	if records[1].ID != "seq2" || records[1].Seq != "GGGGCCCC" {
		t.Errorf("Unexpected second record: %+v", records[1])
	}
}

func TestWriteRoundTrip(t *testing.T) {
	records := []Record{
		{ID: "contig000167:10-50", Seq: "ATGCATGC"},
		{ID: "contig000201:5-30", Seq: "TTTTAAAA"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Records are separated by a blank line.
	if !strings.Contains(buf.String(), "ATGCATGC\n\n") {
		t.Errorf("Missing blank-line separator in output: %q", buf.String())
	}

	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(back) != len(records) {
		t.Fatalf("Expected %d records after round trip, got %d", len(records), len(back))
	}
	for i := range records {
		if back[i] != records[i] {
			t.Errorf("Record %d changed in round trip: %+v != %+v", i, back[i], records[i])
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk error")
}

func TestParsePropagatesReadErrors(t *testing.T) {
	if _, err := Parse(failingReader{}); err == nil {
		t.Fatal("Expected a read error but got none")
	}
}
