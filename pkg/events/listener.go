// -----------------------------------------------------------------------------
// Event Listeners
// -----------------------------------------------------------------------------
// Bu dosya, event listener interface'ini ve yardımcı tipleri içerir.
//
// Örnek:
//
//	slow := events.NewConditionalListener(reporter, events.SlowerThan(200*time.Millisecond))
//	dispatcher.Listen(events.QueryExecutedEvent, slow)
// -----------------------------------------------------------------------------

package events

import "time"

// Listener, olayları işleyen arayüzdür. Handle hata dönerse dispatcher
// hatayı loglar ama diğer listener'ları çalıştırmaya devam eder.
type Listener interface {
	Handle(event Event) error
}

// ListenerFunc, fonksiyonları Listener interface'ine çevirir.
type ListenerFunc func(Event) error

// Handle, ListenerFunc'ı Listener interface'ine uyumlu hale getirir.
func (f ListenerFunc) Handle(event Event) error {
	return f(event)
}

// Logger, log interface'i (dependency injection için). *log.Logger uyar.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ConditionalListener, sadece belirli koşullarda çalışan listener.
type ConditionalListener struct {
	listener  Listener
	condition func(Event) bool
}

// NewConditionalListener, yeni bir ConditionalListener oluşturur.
func NewConditionalListener(listener Listener, condition func(Event) bool) *ConditionalListener {
	return &ConditionalListener{
		listener:  listener,
		condition: condition,
	}
}

// Handle, koşul sağlanıyorsa listener'ı çalıştırır.
func (c *ConditionalListener) Handle(event Event) error {
	if c.condition(event) {
		return c.listener.Handle(event)
	}
	return nil
}

// SlowerThan, süresi threshold'u aşan QueryExecuted olaylarını seçen bir
// koşuldur.
func SlowerThan(threshold time.Duration) func(Event) bool {
	return func(e Event) bool {
		q, ok := e.(*QueryExecuted)
		return ok && q.Duration >= threshold
	}
}

// Failed, hata ile sonuçlanan QueryExecuted olaylarını seçer.
func Failed(e Event) bool {
	q, ok := e.(*QueryExecuted)
	return ok && q.Err != nil
}
