package infra

import (
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial unique indexes, extensions).
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

	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.SocioDeNegocio{},
		&model.Almacen{},
		&model.Producto{},
		&model.ProductoPorAlmacen{},
		&model.MovimientoStock{},
		&model.Unidad{},
		&model.MetodoDePago{},
		&model.DespliegueDePago{},
		&model.EgresoDinero{},
		&model.IngresoDinero{},
		&model.Compra{},
		&model.CompraDetalle{},
		&model.UnidadDeCompra{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.UnidadDeVenta{},
		&model.VentaPago{},
		&model.AjusteStock{},
		&model.AjusteStockDetalle{},
		&model.Prestamo{},
		&model.PrestamoDetalle{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches applies DDL that GORM tags cannot express. Every
// statement is guarded so re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Duplicate-document guard: (socio, serie, numero) must be unique but
		// only when the document actually carries serie and numero.
		{"partial unique idx compras socio/serie/numero", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_compras_socio_serie_numero
  ON compras (socio_de_negocio_id, serie, numero)
  WHERE serie IS NOT NULL AND numero IS NOT NULL AND estado <> 'anulado'`},
		{"partial unique idx ventas socio/serie/numero", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_ventas_socio_serie_numero
  ON ventas (socio_de_negocio_id, serie, numero)
  WHERE serie IS NOT NULL AND numero IS NOT NULL AND estado <> 'anulado'`},
		// Pending quantity can never exceed the snapshot quantity or go negative.
		{"check unidades_de_compra pendiente range", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ck_unidades_de_compra_pendiente') THEN
    ALTER TABLE unidades_de_compra
      ADD CONSTRAINT ck_unidades_de_compra_pendiente
      CHECK (cantidad_pendiente >= 0 AND cantidad_pendiente <= cantidad);
  END IF;
END $$`},
		{"check unidades_de_venta pendiente range", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ck_unidades_de_venta_pendiente') THEN
    ALTER TABLE unidades_de_venta
      ADD CONSTRAINT ck_unidades_de_venta_pendiente
      CHECK (cantidad_pendiente >= 0 AND cantidad_pendiente <= cantidad);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
