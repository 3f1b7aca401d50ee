package feed

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// openEntry returns the content of the archive member called entry, matched
// on its base name without regard to case. With an empty entry the first
// member with the wanted extension is used. Members that unpack to more than
// limit bytes are rejected.
func openEntry(archive []byte, entry, ext string, limit int64) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, "", fmt.Errorf("open archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(f.Name)
		if entry != "" && !strings.EqualFold(base, entry) {
			continue
		}
		if entry == "" && !strings.EqualFold(path.Ext(base), "."+ext) {
			continue
		}

		if f.UncompressedSize64 > uint64(limit) {
			return nil, "", fmt.Errorf("%s exceeds %d bytes", f.Name, limit)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, limit+1))
		_ = rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		// the header size is not trusted
		if int64(len(data)) > limit {
			return nil, "", fmt.Errorf("%s exceeds %d bytes", f.Name, limit)
		}
		return data, f.Name, nil
	}

	if entry == "" {
		return nil, "", fmt.Errorf("no .%s file in archive", ext)
	}
	return nil, "", fmt.Errorf("%s not found in archive", entry)
}

// isZip reports whether data starts with a zip local file header.
func isZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}
