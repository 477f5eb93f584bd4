package sitedata

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
)

// rawRecord is a record as decoded from a data file, before it's turned into
// one of the model types. YAML, JSON, and CSV files all decode into it, so
// the builders don't need to care where a record came from.
type rawRecord map[string]any

// decodeRecords decodes the data file at name into a list of records. The
// file either holds a list at its top level, or a mapping with the list
// under a key matching the entry name.
func decodeRecords(name, entryName string, data []byte) ([]rawRecord, error) {
	var doc any
	switch strings.ToLower(path.Ext(name)) {
	case ".yml", ".yaml":
		if err := decodeYAML(data, &doc, false); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
		}
	case ".json", ".jsonc":
		if err := decodeJSON(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
		}
	case ".csv", ".tsv":
		records, err := decodeDelimited(data, strings.HasSuffix(strings.ToLower(name), ".tsv"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: %s: unsupported data file format", ErrParse, name)
	}
	return recordList(name, entryName, doc)
}

func recordList(name, entryName string, doc any) ([]rawRecord, error) {
	switch val := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		records := make([]rawRecord, 0, len(val))
		for pos, item := range val {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s: item %d is a %T, not a mapping", ErrParse, name, pos, item)
			}
			records = append(records, record)
		}
		return records, nil
	case map[string]any:
		list, ok := val[entryName]
		if !ok {
			return nil, fmt.Errorf("%w: %s: expected a list, or a mapping with a %q key", ErrParse, name, entryName)
		}
		return recordList(name, entryName, list)
	default:
		return nil, fmt.Errorf("%w: %s: expected a list of records, got %T", ErrParse, name, doc)
	}
}

func decodeDelimited(data []byte, tabs bool) ([]rawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if tabs {
		reader.Comma = '\t'
		reader.LazyQuotes = true
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, nil
	}
	header := rows[0]
	records := make([]rawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := rawRecord{}
		for pos, key := range header {
			record[strings.TrimSpace(key)] = row[pos]
		}
		records = append(records, record)
	}
	return records, nil
}

// id returns the record's id. Older data files call it UID.
func (r rawRecord) id() string {
	if uid := r.str("UID"); uid != "" {
		return uid
	}
	return r.str("id")
}

// decodeJSON decodes JSON with comments and trailing commas. Numbers are kept
// as json.Number so long unquoted ids keep every digit.
func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// str returns the value under key as a string. Numbers are formatted the way
// they were written.
func (r rawRecord) str(key string) string {
	return scalarString(r[key])
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// first returns the first of keys with a non-empty value.
func (r rawRecord) first(keys ...string) string {
	for _, key := range keys {
		if val := r.str(key); val != "" {
			return val
		}
	}
	return ""
}

// list returns the value under key as a list of strings. Flat files can't
// hold lists, so a string value is split on "|".
func (r rawRecord) list(key string) []string {
	switch val := r[key].(type) {
	case nil:
		return nil
	case []any:
		res := make([]string, 0, len(val))
		for pos := range val {
			if item := scalarString(val[pos]); item != "" {
				res = append(res, item)
			}
		}
		return res
	default:
		str := r.str(key)
		if str == "" {
			return nil
		}
		var res []string
		for _, part := range strings.Split(str, "|") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
		return res
	}
}

// children returns the list of mappings under key.
func (r rawRecord) children(key string) ([]rawRecord, error) {
	switch val := r[key].(type) {
	case nil:
		return nil, nil
	case []any:
		res := make([]rawRecord, 0, len(val))
		for pos, item := range val {
			child, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is a %T, not a mapping", ErrParse, key, pos, item)
			}
			res = append(res, child)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s is a %T, not a list", ErrParse, key, val)
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// time returns the value under key as a UTC time. Timestamps without an
// offset are read in loc. A missing value is the zero time.
func (r rawRecord) time(key string, loc *time.Location) (time.Time, error) {
	switch val := r[key].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val.UTC(), nil
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return time.Time{}, nil
		}
		for _, layout := range timestampLayouts {
			parsed, err := time.ParseInLocation(layout, val, loc)
			if err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %s: unrecognised timestamp %q", ErrParse, key, val)
	default:
		return time.Time{}, fmt.Errorf("%w: %s: expected a timestamp, got %T", ErrParse, key, val)
	}
}
