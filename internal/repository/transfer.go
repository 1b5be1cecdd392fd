package repository

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/skillswap/skillswap/internal/domain"
)

// ImportReport keys written and skipped by ImportDump
type ImportReport struct {
	Imported []string
	Skipped  []string
}

// ImportDump writes a browser localStorage export ({"key": "<json>"}) into kv.
// Keys that are not state slices are skipped; a slice holding invalid JSON aborts
// the import before anything is written.
func ImportDump(kv KVStore, dump map[string]string, dryRun bool) (*ImportReport, error) {
	known := make(map[string]bool, len(domain.AllSlices))
	for _, s := range domain.AllSlices {
		known[string(s)] = true
	}

	report := &ImportReport{}
	keys := make([]string, 0, len(dump))
	for k := range dump {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !known[k] {
			report.Skipped = append(report.Skipped, k)
			continue
		}
		if !json.Valid([]byte(dump[k])) {
			return nil, fmt.Errorf("key %s: value is not valid JSON", k)
		}
		report.Imported = append(report.Imported, k)
	}
	if dryRun {
		return report, nil
	}

	for _, k := range report.Imported {
		if err := kv.Write(k, []byte(dump[k])); err != nil {
			return nil, fmt.Errorf("write %s: %w", k, err)
		}
	}
	return report, nil
}

// ExportDump returns the stored state slices in the localStorage export format
func ExportDump(kv KVStore) (map[string]string, error) {
	all, err := kv.Dump()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(domain.AllSlices))
	for _, s := range domain.AllSlices {
		if v, ok := all[string(s)]; ok {
			out[string(s)] = string(v)
		}
	}
	return out, nil
}
