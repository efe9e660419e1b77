package convert

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ParseGenBank reads a single GenBank record and returns its LOCUS name
// and the sequence from the ORIGIN block, uppercased with numbering and
// whitespace stripped.
func ParseGenBank(r io.Reader) (string, string, error) {
	var name string
	var seq strings.Builder
	inOrigin := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "LOCUS"):
			fields := strings.Fields(line)
			if len(fields) > 1 {
				name = fields[1]
			}
		case strings.HasPrefix(line, "ORIGIN"):
			inOrigin = true
		case inOrigin:
			if strings.HasPrefix(line, "//") {
				inOrigin = false
				continue
			}
			for _, ch := range line {
				if ch >= 'A' && ch <= 'Z' {
					seq.WriteRune(ch)
				} else if ch >= 'a' && ch <= 'z' {
					seq.WriteRune(ch - 'a' + 'A')
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	if name == "" || seq.Len() == 0 {
		return "", "", errors.New("missing LOCUS name or ORIGIN sequence")
	}
	return name, seq.String(), nil
}
