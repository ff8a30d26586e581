// -----------------------------------------------------------------------------
// Database Package
// -----------------------------------------------------------------------------
// Bu dosya, uygulamanın veritabanına bağlanmasını sağlayan merkezi bağlantı
// yapısını içerir. Connection; *sql.DB havuzunu, driver'a uygun Grammar ve
// Processor'ı ve paylaşılan Scanner'ı bir arada tutar. Builder'lar doğrudan
// Connection'dan üretilir:
//
//	conn, err := database.Open(ctx, cfg, logger)
//	users, err := conn.Table("users").Where("active", "=", true).Get(ctx)
//
// Derleyici her zaman "?" üretir. Connection, SQL'i driver'a göndermeden
// önce placeholder'ları driver'ın native yazımına çevirir.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/biyonik/leaps-query/pkg/database/query"
	"github.com/biyonik/leaps-query/pkg/events"
)

// Config, bağlantı ayarlarıdır.
type Config struct {
	Driver          string
	DSN             string
	TablePrefix     string
	UnionMode       query.UnionMode
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

func (c Config) withDefaults() Config {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 25
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	return c
}

// Connection, lehçe farkındalığı olan veritabanı bağlantısıdır ve
// query.Connection arayüzünü uygular.
type Connection struct {
	db         *sql.DB
	driver     Driver
	grammar    query.Grammar
	processor  query.Processor
	scanner    *query.Scanner
	logger     *log.Logger
	logQueries bool
	events     *events.Dispatcher
}

// Open, driver'ı seçer, havuzu ayarlar ve bağlantıyı test eder.
// Bağlantı sırasında şu adımlar gerçekleştirilir:
//  1. Driver adı çözülür, lehçe ve yetenekleri belirlenir.
//  2. sql.Open ile bağlantı nesnesi oluşturulur.
//  3. Havuz ayarları uygulanır (varsayılan 25/25/5dk).
//  4. PingContext ile veritabanının ulaşılabilirliği kontrol edilir.
//
// Ping başarısız olursa havuz kapatılır ve hata döner.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (*Connection, error) {
	driver, err := LookupDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "dsn is required")
	}

	db, err := sql.Open(driver.Name, cfg.DSN)
	if err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	conn, err := NewConnection(db, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	conn.logger.Printf("Veritabanına bağlanılıyor (%s)...", driver.Name)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	conn.logger.Println("✅ Veritabanı bağlantısı başarılı!")
	return conn, nil
}

// NewConnection, açılmış bir *sql.DB'yi Connection olarak sarar. Havuz
// ayarlarına dokunmaz.
func NewConnection(db *sql.DB, cfg Config, logger *log.Logger) (*Connection, error) {
	if db == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil *sql.DB")
	}
	driver, err := LookupDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	grammar, err := driver.Grammar(
		query.WithTablePrefix(cfg.TablePrefix),
		query.WithUnionMode(cfg.UnionMode),
	)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Connection{
		db:         db,
		driver:     driver,
		grammar:    grammar,
		processor:  driver.Processor(),
		scanner:    query.NewScanner(),
		logger:     logger,
		logQueries: cfg.LogQueries,
	}, nil
}

// DB, alttaki *sql.DB havuzunu döndürür.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Driver, bağlantının driver tanımını döndürür.
func (c *Connection) Driver() Driver {
	return c.driver
}

// Grammar, bağlantının lehçesini döndürür.
func (c *Connection) Grammar() query.Grammar {
	return c.grammar
}

// Processor, bağlantının insert-get-id processor'ını döndürür.
func (c *Connection) Processor() query.Processor {
	return c.processor
}

// Table, verilen tablo için yeni bir Builder döndürür.
func (c *Connection) Table(table interface{}) *query.Builder {
	return c.Query().Table(table)
}

// Query, tablosuz boş bir Builder döndürür.
func (c *Connection) Query() *query.Builder {
	return query.NewBuilder(c.grammar, c, c.processor).WithScanner(c.scanner)
}

// SetEventDispatcher, çalıştırılan her cümle ve transaction adımı için
// olay yayınlanacak dispatcher'ı belirler. nil olayları kapatır.
func (c *Connection) SetEventDispatcher(d *events.Dispatcher) {
	c.events = d
}

// ExecContext, SQL'i native placeholder'larla çalıştırır.
func (c *Connection) ExecContext(ctx context.Context, sqlStr string, args ...interface{}) (sql.Result, error) {
	sqlStr = c.prepare(sqlStr, args)
	start := time.Now()
	res, err := c.db.ExecContext(ctx, sqlStr, args...)
	c.queryExecuted(sqlStr, args, start, err)
	return res, err
}

// QueryContext, SQL'i native placeholder'larla çalıştırır ve satırları döndürür.
func (c *Connection) QueryContext(ctx context.Context, sqlStr string, args ...interface{}) (*sql.Rows, error) {
	sqlStr = c.prepare(sqlStr, args)
	start := time.Now()
	rows, err := c.db.QueryContext(ctx, sqlStr, args...)
	c.queryExecuted(sqlStr, args, start, err)
	return rows, err
}

// QueryRowContext, SQL'i native placeholder'larla çalıştırır ve tek satır döndürür.
func (c *Connection) QueryRowContext(ctx context.Context, sqlStr string, args ...interface{}) *sql.Row {
	sqlStr = c.prepare(sqlStr, args)
	start := time.Now()
	row := c.db.QueryRowContext(ctx, sqlStr, args...)
	c.queryExecuted(sqlStr, args, start, row.Err())
	return row
}

func (c *Connection) prepare(sqlStr string, args []interface{}) string {
	sqlStr = c.driver.Rebind(sqlStr)
	if c.logQueries {
		c.logger.Printf("🔎 [%s] %s (%d bindings)", c.driver.Name, sqlStr, len(args))
	}
	return sqlStr
}

func (c *Connection) queryExecuted(sqlStr string, args []interface{}, start time.Time, err error) {
	if c.events == nil {
		return
	}
	_ = c.events.Dispatch(events.NewQueryExecuted(c.driver.Name, sqlStr, args, time.Since(start), err))
}

func (c *Connection) fire(name string) {
	if c.events == nil {
		return
	}
	_ = c.events.Dispatch(events.NewTransactionEvent(name, c.driver.Name))
}

// Close, havuzu kapatır.
func (c *Connection) Close() error {
	err := c.db.Close()
	if err == nil {
		c.logger.Println("Veritabanı bağlantısı kapatıldı.")
	}
	return err
}
