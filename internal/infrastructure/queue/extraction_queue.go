// Package queue implementa la cola de extracción en proceso: un canal con
// buffer y un pool de workers que procesan los uploads pendientes.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Contabilidad-api/internal/application/extraction"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

// Asegura que ExtractionQueue implementa usecase.ExtractionQueue.
var _ usecase.ExtractionQueue = (*ExtractionQueue)(nil)

// ErrQueueFull la cola no acepta más trabajos; el upload queda para captura manual.
var ErrQueueFull = errors.New("cola de extracción llena")

// ErrQueueClosed la cola ya inició el apagado.
var ErrQueueClosed = errors.New("cola de extracción cerrada")

// ExtractionQueue cola en proceso con N workers. Los trabajos sobreviven solo
// en memoria: si el proceso cae, los uploads quedan en pending y se recuperan
// por captura manual.
type ExtractionQueue struct {
	svc     *extraction.Service
	log     *logger.Logger
	workers int

	ch   chan string
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

// NewExtractionQueue construye la cola y arranca los workers.
func NewExtractionQueue(svc *extraction.Service, workers, queueSize int, log *logger.Logger) *ExtractionQueue {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}
	q := &ExtractionQueue{
		svc:     svc,
		log:     log,
		workers: workers,
		ch:      make(chan string, queueSize),
	}
	q.start()
	return q
}

func (q *ExtractionQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.log.Info().Int("worker_id", workerID).Msg("worker de extracción iniciado")
				for uploadID := range q.ch {
					q.svc.Process(context.Background(), uploadID)
				}
				q.log.Info().Int("worker_id", workerID).Msg("worker de extracción detenido")
			}(i + 1)
		}
	})
}

// Enqueue encola un upload para extracción. No bloquea: si la cola está llena
// devuelve ErrQueueFull y el llamador decide qué registrar en el upload.
func (q *ExtractionQueue) Enqueue(uploadID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- uploadID:
		q.log.Debug().Str("upload_id", uploadID).Msg("upload encolado para extracción")
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown cierra la cola y espera a que los workers drenen los trabajos
// pendientes, o a que venza el contexto.
func (q *ExtractionQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.log.Warn().Msg("apagado de la cola interrumpido por el contexto")
	case <-done:
		q.log.Info().Msg("cola de extracción drenada")
	}
}
