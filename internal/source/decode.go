package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"catexport/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode accepts either a JSON array of records or JSON Lines with one record per
// line. Blank lines are skipped. Unknown members are ignored.
func Decode(data []byte) ([]models.TranslationRecord, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptySource
	}

	if trimmed[0] == '[' {
		var records []models.TranslationRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}

		return records, nil
	}

	return decodeLines(trimmed)
}

func decodeLines(data []byte) ([]models.TranslationRecord, error) {
	var records []models.TranslationRecord

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	line := 0
	for sc.Scan() {
		line++

		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}

		var rec models.TranslationRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", line, err)
		}

		records = append(records, rec)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lines: %w", err)
	}

	return records, nil
}
