package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
)

// ReadFile decodes every tick record of a journal file. Appended sessions
// form concatenated zstd frames, which the decoder reads back to back.
func ReadFile(path string) ([]simulation.TickRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var records []simulation.TickRecord
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var record simulation.TickRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, len(records)+1, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// Files lists the journal files of a spacecraft in chronological order
func Files(baseDir, spacecraft string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(baseDir, spacecraft, "ticks-*"+Extension))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
