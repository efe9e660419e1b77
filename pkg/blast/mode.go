// Package blast builds and runs local BLAST+ searches and parses their
// XML results.
package blast

import (
	"errors"
	"fmt"
	"strings"
)

// Mode names the BLAST+ program to run.
type Mode string

const (
	BlastN  Mode = "blastn"
	BlastP  Mode = "blastp"
	BlastX  Mode = "blastx"
	TBlastN Mode = "tblastn"
	TBlastX Mode = "tblastx"
)

var ErrUnsupportedMode = errors.New("unknown BLAST command")

// Modes returns the supported search modes.
func Modes() []Mode {
	return []Mode{BlastN, BlastP, BlastX, TBlastN, TBlastX}
}

// ModeList formats the supported modes for usage and error messages.
func ModeList() string {
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// ParseMode validates a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedMode, s, ModeList())
}
