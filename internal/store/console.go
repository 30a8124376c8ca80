package store

import (
	"fmt"
	"path/filepath"

	"github.com/tidemark-io/tidelog/internal/ports"
)

// ConsoleGenerations is how many historical console logs survive restarts.
const ConsoleGenerations = 3

const consoleFileName = "console.log"

// OpenConsole rotates the console log generations and opens a fresh
// console.log for append. Unlike the data log, the console is not governed
// by a size ceiling: it rotates once per logger restart, keeping a bounded
// diagnostic history across reboots.
//
// Rotation shifts console.log -> console.log.1 -> console.log.2; the oldest
// generation is discarded.
func OpenConsole(medium ports.Medium, dir string) (ports.Stream, error) {
	if err := medium.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("console dir: %w", err)
	}
	base := filepath.Join(dir, consoleFileName)

	oldest := consoleGenPath(base, ConsoleGenerations-1)
	if medium.Exists(oldest) {
		medium.Remove(oldest)
	}
	for gen := ConsoleGenerations - 2; gen >= 0; gen-- {
		from := consoleGenPath(base, gen)
		if !medium.Exists(from) {
			continue
		}
		if err := medium.Rename(from, consoleGenPath(base, gen+1)); err != nil {
			return nil, fmt.Errorf("rotate console generation %d: %w", gen, err)
		}
	}

	stream, err := medium.Open(base, ports.ModeAppend)
	if err != nil {
		return nil, fmt.Errorf("open console log: %w", err)
	}
	return stream, nil
}

// consoleGenPath returns the path of generation gen; generation 0 is the
// live console.log.
func consoleGenPath(base string, gen int) string {
	if gen == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, gen)
}
