package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource  string
	Reference string
	Err       error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.Reference != "":
		return fmt.Sprintf("%s %s not found", e.Resource, e.Reference)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// TicketNumberMissingError berarti resolusi nomor tiket gagal setelah
// refresh purchase record. Tidak boleh di-substitute dengan placeholder.
type TicketNumberMissingError struct {
	Reference      string
	PassengerIndex int
	Leg            string
	Err            error
}

func (e TicketNumberMissingError) Error() string {
	return fmt.Sprintf("ticket number missing for reference %s passenger %d leg %s",
		e.Reference, e.PassengerIndex, e.Leg)
}

func (e TicketNumberMissingError) Unwrap() error { return e.Err }

// ArtifactCorruptError menandai konten cache gagal cek integritas;
// caller pulih dengan regenerate, bukan dengan menyajikan konten rusak.
type ArtifactCorruptError struct {
	Reference string
	Kind      string
	Reason    string
}

func (e ArtifactCorruptError) Error() string {
	return fmt.Sprintf("artifact %s/%s corrupt: %s", e.Reference, e.Kind, e.Reason)
}

type RenderingError struct {
	Reference string
	Err       error
}

func (e RenderingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rendering failed for %s: %v", e.Reference, e.Err)
	}
	return fmt.Sprintf("rendering failed for %s", e.Reference)
}

func (e RenderingError) Unwrap() error { return e.Err }

// AllocationError: total negatif / bobot kosong, ditolak sebelum alokasi.
type AllocationError struct {
	Msg string
}

func (e AllocationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "allocation rejected"
}

// ErrPaymentPending: artifact final diminta sebelum pembayaran lunas.
var ErrPaymentPending = errors.New("pembayaran belum lunas")

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsTicketNumberMissing(err error) bool {
	var target TicketNumberMissingError
	return errors.As(err, &target)
}

func IsArtifactCorrupt(err error) bool {
	var target ArtifactCorruptError
	return errors.As(err, &target)
}

func IsRendering(err error) bool {
	var target RenderingError
	return errors.As(err, &target)
}

func IsAllocation(err error) bool {
	var target AllocationError
	return errors.As(err, &target)
}
