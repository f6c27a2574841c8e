// Package cache berisi jendela dedup resend: optimasi best-effort untuk
// menekan permintaan kirim-ulang yang sama dalam interval pendek. Bukan
// jaminan correctness; aman hilang saat proses restart.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResendWindow menandai reference yang baru saja dikirim.
type ResendWindow interface {
	// ShouldSend true kalau reference belum dikirim dalam jendela,
	// sekaligus menandai waktu kirim sekarang.
	ShouldSend(reference string) bool
}

const defaultMaxEntries = 4096

// MemoryResendWindow: map in-process dengan batas ukuran.
type MemoryResendWindow struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	lastSent   map[string]time.Time
	now        func() time.Time
}

func NewMemoryResendWindow(ttl time.Duration) *MemoryResendWindow {
	return &MemoryResendWindow{
		ttl:        ttl,
		maxEntries: defaultMaxEntries,
		lastSent:   map[string]time.Time{},
		now:        time.Now,
	}
}

func (w *MemoryResendWindow) ShouldSend(reference string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if last, ok := w.lastSent[reference]; ok && now.Sub(last) < w.ttl {
		return false
	}

	if len(w.lastSent) >= w.maxEntries {
		w.prune(now)
	}
	w.lastSent[reference] = now
	return true
}

func (w *MemoryResendWindow) prune(now time.Time) {
	for ref, last := range w.lastSent {
		if now.Sub(last) >= w.ttl {
			delete(w.lastSent, ref)
		}
	}
	// masih penuh setelah buang yang kadaluarsa: buang semua, best effort
	if len(w.lastSent) >= w.maxEntries {
		w.lastSent = map[string]time.Time{}
	}
}

// RedisResendWindow: backing store bersama untuk deployment multi-instance.
type RedisResendWindow struct {
	Client *redis.Client
	TTL    time.Duration
}

func (w RedisResendWindow) ShouldSend(reference string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := w.Client.SetNX(ctx, "resend:"+reference, time.Now().Unix(), w.TTL).Result()
	if err != nil {
		// Redis bermasalah: jangan blokir pengiriman
		return true
	}
	return ok
}
