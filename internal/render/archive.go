package render

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// NamedBuffer adalah satu member arsip.
type NamedBuffer struct {
	Name    string
	Content []byte
}

// BuildArchive mengemas member PDF ke satu zip. Gagal kalau tidak ada
// member valid sama sekali.
func BuildArchive(members []NamedBuffer) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	written := 0
	for _, m := range members {
		if m.Name == "" || len(m.Content) == 0 {
			continue
		}
		w, err := zw.Create(m.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(m.Content); err != nil {
			return nil, err
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	if written == 0 {
		return nil, fmt.Errorf("arsip tanpa member valid")
	}
	return buf.Bytes(), nil
}

// ArchiveMemberCount menghitung jumlah dokumen dalam arsip untuk cek
// integritas terhadap jumlah yang diharapkan (legs x penumpang).
func ArchiveMemberCount(content []byte) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, err
	}
	return len(zr.File), nil
}
