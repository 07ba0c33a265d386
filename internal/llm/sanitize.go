package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// StripCodeFence removes a surrounding Markdown code fence (``` or ```json)
// that some models add despite being told not to.
func StripCodeFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = s[3:]
	if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = bytes.TrimPrefix(s, []byte("json"))
	}
	s = bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
	return bytes.TrimSpace(s)
}

// NormalizeAndSanitizeRecords
// - Coerces number/bool values of key, value, comments to strings
// - Turns null or missing fields into ""
// - Removes unknown keys and non-object array items
func NormalizeAndSanitizeRecords(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	changed := make([]string, 0, 8)
	out := make([]map[string]string, 0, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			changed = append(changed, fmt.Sprintf("[%d](not object)", i))
			continue
		}
		rec := make(map[string]string, len(recordFields))
		for _, f := range recordFields {
			v, present := obj[f]
			switch t := v.(type) {
			case string:
				rec[f] = t
			case float64:
				rec[f] = strconv.FormatFloat(t, 'f', -1, 64)
				changed = append(changed, fmt.Sprintf("[%d].%s(number)", i, f))
			case bool:
				rec[f] = strconv.FormatBool(t)
				changed = append(changed, fmt.Sprintf("[%d].%s(bool)", i, f))
			case nil:
				rec[f] = ""
				if present {
					changed = append(changed, fmt.Sprintf("[%d].%s(null)", i, f))
				} else {
					changed = append(changed, fmt.Sprintf("[%d].%s(missing)", i, f))
				}
			default:
				b, _ := json.Marshal(t)
				rec[f] = string(b)
				changed = append(changed, fmt.Sprintf("[%d].%s(type)", i, f))
			}
		}
		for k := range obj {
			if _, known := rec[k]; !known {
				changed = append(changed, fmt.Sprintf("[%d].%s(unknown)", i, k))
			}
		}
		out = append(out, rec)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, changed, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(changed) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "changed", strings.Join(changed, ","))
	}
	return b, changed, nil
}
