package reconcile_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slms-api/internal/application/reconcile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reemplazo completo de la instantánea
// ──────────────────────────────────────────────────────────────────────────────

func TestPoller_RefreshReemplazaLaInstantaneaCompleta(t *testing.T) {
	var contador atomic.Int32
	p := reconcile.NewPoller("test", time.Hour, func(ctx context.Context) (int32, error) {
		return contador.Add(1), nil
	}, nil)

	assert.True(t, p.Loading(), "antes del primer fetch el poller está cargando")

	ctx := context.Background()
	p.Refresh(ctx)
	snap, _, ok := p.Snapshot()
	require.True(t, ok)
	assert.Equal(t, int32(1), snap)
	assert.False(t, p.Loading())

	// Cada refresh descarta la instantánea anterior por completo.
	p.Refresh(ctx)
	snap, _, _ = p.Snapshot()
	assert.Equal(t, int32(2), snap)
}

func TestPoller_FetchFallidoConservaLaPreviaYMarcaStale(t *testing.T) {
	var fallar atomic.Bool
	p := reconcile.NewPoller("test", time.Hour, func(ctx context.Context) (string, error) {
		if fallar.Load() {
			return "", errors.New("backend caído")
		}
		return "buena", nil
	}, nil)

	ctx := context.Background()
	p.Refresh(ctx)
	require.False(t, p.Stale())

	fallar.Store(true)
	p.Refresh(ctx)

	snap, _, ok := p.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "buena", snap, "la falla transitoria conserva la última instantánea buena")
	assert.True(t, p.Stale())

	// El siguiente fetch exitoso limpia el flag.
	fallar.Store(false)
	p.Refresh(ctx)
	assert.False(t, p.Stale())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestPoller_RunSeDetieneAlCancelar(t *testing.T) {
	p := reconcile.NewPoller("test", 5*time.Millisecond, func(ctx context.Context) (int, error) {
		return 1, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

// Un resultado que llega después de la cancelación se descarta sin mutar.
func TestPoller_ResultadoPostCancelacionNoMuta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := reconcile.NewPoller("test", time.Hour, func(fctx context.Context) (string, error) {
		cancel() // el dueño se va mientras el fetch está en vuelo
		return "tardía", nil
	}, nil)

	p.Refresh(ctx)

	_, _, ok := p.Snapshot()
	assert.False(t, ok, "un fetch que termina tras la cancelación no debe publicar instantánea")
	assert.True(t, p.Loading())
}

func TestPoller_RunHaceElFetchInicialDeInmediato(t *testing.T) {
	var contador atomic.Int32
	p := reconcile.NewPoller("test", time.Hour, func(ctx context.Context) (int32, error) {
		return contador.Add(1), nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	require.Eventually(t, func() bool { return !p.Loading() }, time.Second, time.Millisecond,
		"el primer fetch sale inmediatamente, sin esperar el primer tick")
	cancel()

	snap, fetchedAt, ok := p.Snapshot()
	require.True(t, ok)
	assert.Equal(t, int32(1), snap)
	assert.False(t, fetchedAt.IsZero())
}
