package cloudflare

import (
	"bytes"
	"io"
	"sync"
)

// progressReader reports how much of an in-memory body has been read.
// Reported values never go down, even if the SDK rewinds the body.
type progressReader struct {
	r    *bytes.Reader
	fn   func(pct int)
	mu   sync.Mutex
	last int
}

func newProgressReader(r *bytes.Reader, fn func(pct int)) *progressReader {
	return &progressReader{r: r, fn: fn, last: -1}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.report()
	return n, err
}

func (p *progressReader) Seek(offset int64, whence int) (int64, error) {
	return p.r.Seek(offset, whence)
}

func (p *progressReader) report() {
	total := p.r.Size()
	pct := 100
	if total > 0 {
		pct = int((total - int64(p.r.Len())) * 100 / total)
	}
	// 100 sadece yükleme onaylandıktan sonra bildirilir
	p.emit(min(pct, 99))
}

func (p *progressReader) done() {
	p.emit(100)
}

func (p *progressReader) emit(pct int) {
	if p.fn == nil {
		return
	}
	p.mu.Lock()
	if pct <= p.last {
		p.mu.Unlock()
		return
	}
	p.last = pct
	p.mu.Unlock()
	p.fn(pct)
}

var _ io.ReadSeeker = (*progressReader)(nil)
