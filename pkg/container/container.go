// pkg/container/container.go
package container

import (
	"io"
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotRegistered, istenen tip için fabrika kaydı yoksa döner.
var ErrNotRegistered = errors.New("container: service not registered")

type entry struct {
	once     sync.Once
	factory  func(*Container) (any, error)
	instance any
	err      error
}

// Container, bağımlılıkları yöneten DI konteyneridir.
// Servisleri (hizmetleri) "tembel" (lazy) olarak yükler ve
// singleton (tekil) olarak saklar. Global bir örnek yoktur; uygulama
// konteyneri main içinde kurar ve komutlara verir.
//
// Fabrikalar kilit dışında çalışır, bu yüzden bir fabrika başka servisleri
// Resolve edebilir. Döngüsel bağımlılıklar desteklenmez.
type Container struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*entry
	closers []io.Closer
}

// New, yeni bir boş DI konteyneri oluşturur.
func New() *Container {
	return &Container{entries: make(map[reflect.Type]*entry)}
}

// Provide, T tipi için bir fabrika kaydeder. Aynı tip için yapılan ikinci
// kayıt öncekinin yerini alır.
//
// Örnek:
//
//	container.Provide(c, func(c *container.Container) (*database.Connection, error) {
//	    cfg := container.MustResolve[*config.Config](c)
//	    return database.Open(ctx, cfg.DatabaseConfig(), logger)
//	})
func Provide[T any](c *Container, factory func(*Container) (T, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[typeOf[T]()] = &entry{
		factory: func(c *Container) (any, error) { return factory(c) },
	}
}

// Instance, hazır bir değeri T tipi için kaydeder.
func Instance[T any](c *Container, value T) {
	Provide(c, func(*Container) (T, error) { return value, nil })
}

// Resolve, T tipindeki servisi çözer (resolve). İlk çağrıda fabrika
// çalıştırılır; sonuç (hata dahil) saklanır ve sonraki çağrılarda döner.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	t := typeOf[T]()

	c.mu.RLock()
	e, ok := c.entries[t]
	c.mu.RUnlock()
	if !ok {
		return zero, errors.Wrapf(ErrNotRegistered, "%s", t)
	}

	e.once.Do(func() {
		e.instance, e.err = e.factory(c)
		if e.err != nil {
			e.err = errors.Wrapf(e.err, "container: %s tipi oluşturulurken hata", t)
			return
		}
		if closer, ok := e.instance.(io.Closer); ok {
			c.mu.Lock()
			c.closers = append(c.closers, closer)
			c.mu.Unlock()
		}
	})
	if e.err != nil {
		return zero, e.err
	}
	instance, _ := e.instance.(T)
	return instance, nil
}

// MustResolve, Resolve'u çağırır ama hata durumunda 'panic' yapar.
// Bu, uygulamanın başlatılması (bootstrap) sırasında, servislerin
// varlığından emin olduğumuzda kullanılır.
func MustResolve[T any](c *Container) T {
	instance, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return instance
}

// Close, çözülmüş ve io.Closer uygulayan servisleri oluşturulma sırasının
// tersine kapatır. İlk hata döner; diğer servisler yine de kapatılır.
func (c *Container) Close() error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
