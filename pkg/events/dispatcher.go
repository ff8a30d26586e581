// -----------------------------------------------------------------------------
// Event Dispatcher
// -----------------------------------------------------------------------------
// Bu dosya, event'leri dispatch eden ve listener'ları yöneten merkezi yapıdır.
// Connection her cümleden sonra Dispatch çağırdığı için listener'sız
// olaylar hiçbir iş yapmadan ve log yazmadan döner.
//
// Kullanım:
//
//	dispatcher := events.NewDispatcher(logger)
//	defer dispatcher.Shutdown()
//
//	conn.SetEventDispatcher(dispatcher)
//	dispatcher.Listen(events.QueryExecutedEvent, profiler)
// -----------------------------------------------------------------------------

package events

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrShutdownTimeout, ShutdownWithTimeout süresi aşıldığında döner.
var ErrShutdownTimeout = errors.New("events: shutdown timeout exceeded")

// Dispatcher, event'leri yöneten merkezi yapıdır.
//
// Özellikler:
// - Thread-safe (concurrent kullanım için güvenli)
// - Event başına birden fazla listener
// - Senkron ve asenkron dispatch
// - Context ile graceful shutdown
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    Logger
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewDispatcher, yeni bir Dispatcher oluşturur. Kullanım bittiğinde
// Shutdown çağrılmalıdır.
func NewDispatcher(logger Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		listeners: make(map[string][]Listener),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Listen, belirtilen event'e bir listener kaydeder. Listener'lar kayıt
// sırasıyla çağrılır.
func (d *Dispatcher) Listen(eventName string, listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[eventName] = append(d.listeners[eventName], listener)
}

// Dispatch, bir event'i tüm kayıtlı listener'lara sırayla gönderir.
// Bir listener hata dönerse loglanır ve diğerleri yine çalışır; son hata
// döndürülür.
func (d *Dispatcher) Dispatch(event Event) error {
	d.mu.RLock()
	listeners := d.listeners[event.Name()]
	d.mu.RUnlock()

	var lastError error
	for _, listener := range listeners {
		if err := listener.Handle(event); err != nil {
			lastError = err
			d.logger.Printf("❌ Listener error for '%s': %v", event.Name(), err)
		}
	}
	return lastError
}

// DispatchAsync, event'i goroutine'de dispatch eder ve hemen döner.
// Shutdown'dan sonra gelen event'ler yok sayılır.
func (d *Dispatcher) DispatchAsync(event Event) {
	select {
	case <-d.ctx.Done():
		d.logger.Printf("⚠️  Dispatcher is shutting down, async event '%s' ignored", event.Name())
		return
	default:
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.Dispatch(event)
	}()
}

// Forget, belirtilen event için tüm listener'ları kaldırır.
func (d *Dispatcher) Forget(eventName string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.listeners, eventName)
}

// HasListeners, belirtilen event için listener olup olmadığını kontrol eder.
func (d *Dispatcher) HasListeners(eventName string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.listeners[eventName]) > 0
}

// Shutdown, yeni async event'leri engeller ve bekleyenlerin bitmesini bekler.
func (d *Dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
}

// ShutdownWithTimeout, Shutdown gibidir ama en fazla timeout kadar bekler.
func (d *Dispatcher) ShutdownWithTimeout(timeout time.Duration) error {
	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		d.logger.Println("⚠️  Event dispatcher shutdown timeout - some events may not have completed")
		return ErrShutdownTimeout
	}
}

// Close, Shutdown'ı io.Closer olarak sunar.
func (d *Dispatcher) Close() error {
	d.Shutdown()
	return nil
}
