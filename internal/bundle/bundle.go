// Package bundle assembles the bulk-download ZIP: one entry per resolved
// item plus a manifest attributing every input item to its outcome.
package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"

	"stormgis/internal/encode"
)

// item outcomes recorded in the manifest
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Item is the per-input outcome of one bulk entry. File is non-nil only
// for StatusOK.
type Item struct {
	AssetID string
	Dataset string
	Status  string
	Detail  string
	File    *encode.File
}

// Build writes the archive. Items appear in input order in the manifest so
// every row is attributable to its request entry; duplicate filenames are
// disambiguated with the item index.
func Build(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var manifest bytes.Buffer
	cw := csv.NewWriter(&manifest)
	if err := cw.Write([]string{"asset_id", "dataset", "status", "detail", "filename", "checksum"}); err != nil {
		return nil, err
	}

	used := make(map[string]int)
	for i, it := range items {
		filename, checksum := "", ""
		if it.File != nil {
			filename = uniqueName(used, it.File.Name, i)
			checksum = it.File.Checksum()
			entry, err := zw.Create(filename)
			if err != nil {
				return nil, fmt.Errorf("zip entry %s: %w", filename, err)
			}
			if _, err := entry.Write(it.File.Data); err != nil {
				return nil, fmt.Errorf("zip entry %s: %w", filename, err)
			}
		}
		row := []string{it.AssetID, it.Dataset, it.Status, it.Detail, filename, checksum}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	entry, err := zw.Create("manifest.csv")
	if err != nil {
		return nil, err
	}
	if _, err := entry.Write(manifest.Bytes()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uniqueName(used map[string]int, name string, i int) string {
	if _, taken := used[name]; !taken {
		used[name] = i
		return name
	}
	return fmt.Sprintf("%d_%s", i, name)
}
