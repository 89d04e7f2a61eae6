package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory stubs).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

var ErrSnapshotInvalido = errors.New("unidad derivada inválida: factor y cantidad deben ser positivos")

const fechaISO = "2006-01-02"

func formatearFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaISO)
	return &s
}

func parsearFecha(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(fechaISO, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
