package phrasetable

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// The upstream phrase-extraction job writes a fixed-width report:
// five header lines, then one phrase pair per line with the source phrase in
// columns 0-39, the target phrase in columns 40-79, and the remainder
// holding cost(f|e), cost(e|f) and a raw count. Column offsets are in runes,
// not bytes, since source text is accented. The entry cost is the sum of the
// two directional costs.

const headerLines = 5
const columnWidth = 40

// LoadTextFile reads a fixed-width phrase table from a file.
func LoadTextFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadText(f)
}

// LoadText reads a fixed-width phrase table. Lines that do not parse are
// skipped, matching the tolerant behavior of the upstream report reader.
func LoadText(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= headerLines {
			continue
		}
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}

		runes := []rune(line)
		source := strings.TrimSpace(sliceRunes(runes, 0, columnWidth))
		target := strings.TrimSpace(sliceRunes(runes, columnWidth, 2*columnWidth))
		rest := strings.Fields(sliceRunes(runes, 2*columnWidth, len(runes)))
		if source == "" || target == "" || len(rest) < 3 {
			continue
		}

		costFE, err1 := strconv.ParseFloat(rest[0], 64)
		costEF, err2 := strconv.ParseFloat(rest[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}

		entries = append(entries, Entry{
			Source: source,
			Target: target,
			Cost:   costFE + costEF,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(entries)
}

func sliceRunes(runes []rune, from, to int) string {
	if from >= len(runes) {
		return ""
	}
	if to > len(runes) {
		to = len(runes)
	}
	return string(runes[from:to])
}
