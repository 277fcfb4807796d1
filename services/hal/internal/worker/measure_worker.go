// services/hal/internal/worker/measure_worker.go
package worker

import (
	"context"
	"time"

	"mprsense-go/services/hal/internal/halcore"
	"mprsense-go/services/hal/internal/util"
)

// MeasureWorker owns one shared bus. It triggers adaptors in request order
// and collects each one once its conversion hint has elapsed, so a slow
// conversion never holds the bus.
type MeasureWorker struct {
	cfg  halcore.WorkerConfig
	reqQ chan halcore.MeasureReq
	sink chan<- halcore.Result // fan-in sink owned by service

	pending  map[string]*collectItem
	want     map[string]bool
	collects []*collectItem
	timer    *time.Timer
}

type collectItem struct {
	id      string
	adaptor halcore.Adaptor
	due     time.Time
	retries int
}

func New(cfg halcore.WorkerConfig, sink chan<- halcore.Result) *MeasureWorker {
	if cfg.TriggerTimeout <= 0 {
		cfg.TriggerTimeout = 100 * time.Millisecond
	}
	if cfg.CollectTimeout <= 0 {
		cfg.CollectTimeout = 100 * time.Millisecond
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Millisecond
	}
	if cfg.MaxRetries <= 0 {
		// MPR conversions finish within ~5 ms of the hint.
		cfg.MaxRetries = 10
	}
	if cfg.InputQueueSize <= 0 {
		cfg.InputQueueSize = 16
	}
	return &MeasureWorker{
		cfg:     cfg,
		reqQ:    make(chan halcore.MeasureReq, cfg.InputQueueSize),
		sink:    sink,
		pending: map[string]*collectItem{},
		want:    map[string]bool{},
		timer:   time.NewTimer(time.Hour),
	}
}

// Submit queues a request. A prio request may wait briefly for queue space.
func (w *MeasureWorker) Submit(req halcore.MeasureReq) bool {
	select {
	case w.reqQ <- req:
		return true
	default:
		if req.Prio {
			select {
			case w.reqQ <- req:
				return true
			case <-time.After(5 * time.Millisecond):
			}
		}
		return false
	}
}

func (w *MeasureWorker) Start(ctx context.Context) {
	if !w.timer.Stop() {
		util.DrainTimer(w.timer)
	}
	go w.run(ctx)
}

func (w *MeasureWorker) run(ctx context.Context) {
	for {
		if next := w.minDue(); next.IsZero() {
			util.ResetTimer(w.timer, time.Hour)
		} else {
			util.ResetTimer(w.timer, time.Until(next))
		}
		select {
		case <-ctx.Done():
			return
		case req := <-w.reqQ:
			if _, ok := w.pending[req.ID]; ok {
				// Already converting; a prio request re-arms after this one.
				if req.Prio {
					w.want[req.ID] = true
				}
				continue
			}
			it := &collectItem{id: req.ID, adaptor: req.Adaptor}
			if err := w.trigger(ctx, it); err != nil {
				w.emit(ctx, halcore.Result{ID: req.ID, Err: err})
			}
		case <-w.timer.C:
			w.collectDue(ctx, time.Now())
		}
	}
}

func (w *MeasureWorker) trigger(ctx context.Context, it *collectItem) error {
	tctx, cancel := context.WithTimeout(ctx, w.cfg.TriggerTimeout)
	after, err := it.adaptor.Trigger(tctx)
	cancel()
	if err != nil {
		return err
	}
	it.retries = 0
	it.due = time.Now().Add(after)
	w.pending[it.id] = it
	w.collects = append(w.collects, it)
	return nil
}

func (w *MeasureWorker) collectDue(ctx context.Context, now time.Time) {
	items := w.collects
	w.collects = nil
	for _, it := range items {
		if now.Before(it.due) {
			w.collects = append(w.collects, it)
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, w.cfg.CollectTimeout)
		s, err := it.adaptor.Collect(cctx)
		cancel()

		if err == halcore.ErrNotReady && it.retries < w.cfg.MaxRetries {
			it.retries++
			it.due = now.Add(w.cfg.RetryBackoff)
			w.collects = append(w.collects, it)
			continue
		}
		delete(w.pending, it.id)
		if err != nil {
			w.emit(ctx, halcore.Result{ID: it.id, Err: err, Retries: it.retries})
		} else {
			w.emit(ctx, halcore.Result{ID: it.id, Sample: s, Retries: it.retries})
		}
		if w.want[it.id] {
			delete(w.want, it.id)
			if terr := w.trigger(ctx, it); terr != nil {
				w.emit(ctx, halcore.Result{ID: it.id, Err: terr})
			}
		}
	}
}

func (w *MeasureWorker) emit(ctx context.Context, r halcore.Result) {
	select {
	case w.sink <- r:
	case <-ctx.Done():
	}
}

func (w *MeasureWorker) minDue() time.Time {
	var min time.Time
	for _, it := range w.collects {
		if min.IsZero() || it.due.Before(min) {
			min = it.due
		}
	}
	return min
}
