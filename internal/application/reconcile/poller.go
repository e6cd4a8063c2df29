// Package reconcile implementa el coordinador de polling: una tarea
// programada cancelable que en cada tick re-consulta el estado autoritativo
// y reemplaza por completo la instantánea en memoria (sin merge incremental,
// por eso es idempotente y tolera ticks perdidos).
package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/slms-api/pkg/logger"
)

// FetchFunc obtiene la instantánea autoritativa completa.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller re-consulta con un FetchFunc a intervalo fijo y publica la última
// instantánea buena. Solo el fetch inicial cuenta como "cargando"; los
// refrescos siguientes son silenciosos. Se detiene al cancelar el contexto
// y a partir de ahí no muta más estado (un resultado en vuelo se descarta).
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	log      *logger.Logger

	mu        sync.RWMutex
	snapshot  T
	fetchedAt time.Time
	loaded    bool
	stale     bool
}

// NewPoller construye el poller; no arranca hasta llamar Run.
func NewPoller[T any](name string, interval time.Duration, fetch FetchFunc[T], log *logger.Logger) *Poller[T] {
	return &Poller[T]{name: name, interval: interval, fetch: fetch, log: log}
}

// Run ejecuta el ciclo de polling hasta que el contexto se cancele.
// Bloqueante: pensado para correr en su propia goroutine.
func (p *Poller[T]) Run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick hace un fetch y, si sigue vigente, reemplaza la instantánea completa.
func (p *Poller[T]) tick(ctx context.Context) {
	snap, err := p.fetch(ctx)
	if ctx.Err() != nil {
		// El dueño del poller ya se fue: descartar el resultado sin mutar.
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		// Falla transitoria: se conserva la instantánea previa marcada como
		// obsoleta; el próximo tick reintenta el camino de lectura.
		p.stale = true
		if p.log != nil {
			p.log.Warn().Err(err).Str("poller", p.name).Msg("fetch de reconciliación falló")
		}
		return
	}
	p.snapshot = snap
	p.fetchedAt = time.Now()
	p.loaded = true
	p.stale = false
}

// Snapshot devuelve la última instantánea buena, cuándo se obtuvo y si ya
// hubo al menos un fetch exitoso.
func (p *Poller[T]) Snapshot() (T, time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.fetchedAt, p.loaded
}

// Loading indica que todavía no terminó el fetch inicial.
func (p *Poller[T]) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.loaded
}

// Stale indica que el último fetch falló y la instantánea vigente es la previa.
func (p *Poller[T]) Stale() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stale
}

// Refresh fuerza un tick fuera de agenda (útil tras una mutación del usuario
// para acortar la ventana de consistencia eventual).
func (p *Poller[T]) Refresh(ctx context.Context) {
	p.tick(ctx)
}
