package render

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestBuildArchiveSkipsEmptyMembers(t *testing.T) {
	content, err := BuildArchive([]NamedBuffer{
		{Name: "01_budi_berangkat.pdf", Content: []byte("%PDF-a")},
		{Name: "", Content: []byte("%PDF-b")},
		{Name: "02_sari_berangkat.pdf", Content: nil},
		{Name: "03_sari_pulang.pdf", Content: []byte("%PDF-c")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	count, err := ArchiveMemberCount(content)
	if err != nil {
		t.Fatalf("arsip tidak terbaca: %v", err)
	}
	if count != 2 {
		t.Fatalf("member = %d, want 2", count)
	}
}

func TestBuildArchiveRoundTrip(t *testing.T) {
	content, err := BuildArchive([]NamedBuffer{
		{Name: "tiket.pdf", Content: []byte("%PDF-isi")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("zip reader: %v", err)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open member: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "%PDF-isi" {
		t.Fatalf("isi member = %q", got)
	}
}

func TestBuildArchiveRejectsAllEmpty(t *testing.T) {
	if _, err := BuildArchive([]NamedBuffer{{Name: "a.pdf"}}); err == nil {
		t.Fatalf("arsip tanpa member valid harus error")
	}
	if _, err := BuildArchive(nil); err == nil {
		t.Fatalf("daftar kosong harus error")
	}
}

func TestArchiveMemberCountRejectsGarbage(t *testing.T) {
	if _, err := ArchiveMemberCount([]byte("bukan zip")); err == nil {
		t.Fatalf("konten bukan zip harus error")
	}
}
