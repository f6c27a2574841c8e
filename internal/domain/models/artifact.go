package models

import "time"

type ArtifactKind string

const (
	ArtifactHold         ArtifactKind = "hold"
	ArtifactFinal        ArtifactKind = "final"
	ArtifactFinalArchive ArtifactKind = "final_archive"
)

// ArtifactMeta menyertai penulisan artifact ke cache.
type ArtifactMeta struct {
	BookedBy    string
	ExternalURL string
}

// TicketArtifact adalah dokumen cetak yang sudah dirender, di-cache per PNR.
// Transisi hold -> final satu arah: begitu final ada, hold tidak pernah
// disajikan lagi.
type TicketArtifact struct {
	Reference   string
	Kind        ArtifactKind
	Content     []byte
	BookedBy    string
	ExternalURL string
	UpdatedAt   time.Time
}
