package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/sparked/backend/config"
	"github.com/sparked/backend/internal/infra/db"
)

var once sync.Once
var database *Db

type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens a shared in-memory SQLite database once per test binary and
// migrates the given models.
func NewDb(models ...any) *Db {
	once.Do(func() {
		database = open(models)
	})
	return database
}

func open(models []any) *Db {
	conn, err := db.NewSQLiteConnection(&config.DatabaseConfig{
		Driver:       db.DriverSQLite,
		URL:          "file::memory:?cache=shared",
		MaxOpenConns: 1,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: conn.DB(),
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB drops every table and migrates them again.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Migrator().DropTable(d.models...); err != nil {
		return err
	}
	if err := d.DbConn.AutoMigrate(d.models...); err != nil {
		return err
	}

	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	var count int64
	err := d.DbConn.Table(table).Count(&count).Error
	return count, err
}
