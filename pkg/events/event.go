// -----------------------------------------------------------------------------
// Database Events
// -----------------------------------------------------------------------------
// Bu dosya, bağlantı katmanının yayınladığı olayları tanımlar. Laravel'deki
// DB::listen() ve transaction olaylarına benzer şekilde, her çalıştırılan
// cümle için bir QueryExecuted olayı, transaction yaşam döngüsü için de
// TransactionEvent yayınlanır.
//
// Örnek:
//
//	dispatcher.Listen(events.QueryExecutedEvent, events.ListenerFunc(func(e events.Event) error {
//	    q := e.(*events.QueryExecuted)
//	    log.Printf("%s (%s)", q.SQL, q.Duration)
//	    return nil
//	}))
// -----------------------------------------------------------------------------

package events

import (
	"time"
)

// Olay adları.
const (
	QueryExecutedEvent         = "query.executed"
	TransactionBeginningEvent  = "transaction.beginning"
	TransactionCommittedEvent  = "transaction.committed"
	TransactionRolledBackEvent = "transaction.rolled_back"
)

// Event, tüm olayların uyguladığı arayüzdür.
type Event interface {
	// Name, olayın adını döndürür (örn: "query.executed").
	Name() string

	// OccurredAt, olayın gerçekleşme zamanını döndürür.
	OccurredAt() time.Time
}

// BaseEvent, olaylara gömülen ortak alanlardır.
type BaseEvent struct {
	name       string
	occurredAt time.Time
}

func newBaseEvent(name string) BaseEvent {
	return BaseEvent{name: name, occurredAt: time.Now()}
}

// Name, olay adını döndürür.
func (e BaseEvent) Name() string {
	return e.name
}

// OccurredAt, olay zamanını döndürür.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// QueryExecuted, driver'a gönderilmiş bir cümleyi anlatır. SQL, driver'ın
// native placeholder yazımıyla saklanır.
type QueryExecuted struct {
	BaseEvent
	Driver   string
	SQL      string
	Bindings []interface{}
	Duration time.Duration
	Err      error
}

// NewQueryExecuted, yeni bir QueryExecuted olayı oluşturur.
func NewQueryExecuted(driver, sql string, bindings []interface{}, duration time.Duration, err error) *QueryExecuted {
	return &QueryExecuted{
		BaseEvent: newBaseEvent(QueryExecutedEvent),
		Driver:    driver,
		SQL:       sql,
		Bindings:  bindings,
		Duration:  duration,
		Err:       err,
	}
}

// TransactionEvent, transaction başlangıcı, commit ve rollback olaylarıdır.
type TransactionEvent struct {
	BaseEvent
	Driver string
}

// NewTransactionEvent, verilen adla bir transaction olayı oluşturur.
func NewTransactionEvent(name, driver string) *TransactionEvent {
	return &TransactionEvent{BaseEvent: newBaseEvent(name), Driver: driver}
}
