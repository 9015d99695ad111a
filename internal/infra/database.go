package infra

import (
	"fmt"

	"farmastock/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, and seeds the fixed category catalog.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the model schema and seeds the category catalog.
// Idempotent — also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Proveedor{},
		&model.Categoria{},
		&model.Producto{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return seedCategorias(db)
}

// seedCategorias inserts the closed category set. The API has no category
// write operations, so this is the only code path that creates rows.
func seedCategorias(db *gorm.DB) error {
	for _, nombre := range model.NombresCategoria() {
		c := model.Categoria{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&c).Error; err != nil {
			return fmt.Errorf("seed categoria %s: %w", nombre, err)
		}
	}
	return nil
}
