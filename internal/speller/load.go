package speller

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// defaultDictionary is an English frequency list of about 82,000 words, one
// "word count" per line, used when no dictionary file is configured.
//
//go:embed data/en_words.txt
var defaultDictionary []byte

// DefaultDictionary returns a reader over the embedded word list.
func DefaultDictionary() io.Reader {
	return bytes.NewReader(defaultDictionary)
}

// parseFrequencies reads "word count" lines. A bare word counts once; blank
// lines and lines starting with '#' are skipped. Words are lowercased.
func parseFrequencies(r io.Reader, fn func(word string, count int)) (int, error) {
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		word := strings.ToLower(parts[0])
		count := 1
		if len(parts) >= 2 {
			c, err := strconv.Atoi(parts[1])
			if err != nil {
				fv, err2 := strconv.ParseFloat(parts[1], 64)
				if err2 != nil {
					continue
				}
				c = int(fv)
			}
			count = c
		}
		if count <= 0 {
			continue
		}
		fn(word, count)
		n++
	}
	if err := s.Err(); err != nil {
		return n, fmt.Errorf("speller: read dictionary: %w", err)
	}
	return n, nil
}

// loadMapped memory-maps path read-only and hands its contents to load.
func loadMapped(path string, load func(io.Reader) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("speller: open dictionary: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("speller: stat dictionary: %w", err)
	}
	// zero-length files cannot be mapped
	if st.Size() == 0 {
		return 0, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("speller: map dictionary: %w", err)
	}
	defer m.Unmap()

	return load(bytes.NewReader(m))
}
