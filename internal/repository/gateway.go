// Package repository is the persistence gateway: typed CRUD and paginated
// queries over an injected gorm handle. Every write runs in its own
// transaction and store errors are reduced to ErrNotFound, ErrConflict or
// ErrPersistence before they leave the package.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/logger"
)

// Unique names a column whose value must not already exist on insert.
type Unique struct {
	Column string
	Value  any
}

// Cascade removes dependent rows of the record identified by id. It runs
// inside the delete transaction, before the record itself is removed.
type Cascade func(tx *gorm.DB, id uint) error

// Gateway provides CRUD for one model type.
type Gateway[T any] struct {
	db     *gorm.DB
	entity string
}

// NewGateway returns a gateway for T. entity is used in logs and errors.
func NewGateway[T any](db *gorm.DB, entity string) *Gateway[T] {
	return &Gateway[T]{db: db, entity: entity}
}

// Entity returns the entity name the gateway was created with.
func (g *Gateway[T]) Entity() string {
	return g.entity
}

// Create inserts record. Each Unique is checked inside the same transaction
// and the store's own constraints back the check up under concurrency.
func (g *Gateway[T]) Create(ctx context.Context, record *T, uniques ...Unique) error {
	return g.Transaction(ctx, "create", func(tx *gorm.DB) error {
		for _, u := range uniques {
			var count int64
			if err := tx.Model(new(T)).Where(u.Column+" = ?", u.Value).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%s with %s %v: %w", g.entity, u.Column, u.Value, ErrConflict)
			}
		}
		return tx.Create(record).Error
	})
}

// GetByID loads the record with id, eager loading the named associations.
func (g *Gateway[T]) GetByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	var record T
	tx := g.db.WithContext(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p, orderByID)
	}
	if err := tx.First(&record, id).Error; err != nil {
		return nil, g.translate("get", err)
	}
	return &record, nil
}

// Delete removes the record with id after running cascades, all in one
// transaction. The deleted record is returned.
func (g *Gateway[T]) Delete(ctx context.Context, id uint, cascades ...Cascade) (*T, error) {
	var record T
	err := g.Transaction(ctx, "delete", func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}
		for _, cascade := range cascades {
			if err := cascade(tx, id); err != nil {
				return err
			}
		}
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns one page of records matching q, ordered by id.
func (g *Gateway[T]) List(ctx context.Context, q Query) (*Page[T], error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	var total int64
	if err := q.apply(g.db.WithContext(ctx).Model(new(T))).Count(&total).Error; err != nil {
		return nil, g.translate("count", err)
	}

	items := make([]T, 0, q.PerPage)
	if q.offset() < total {
		tx := q.apply(g.db.WithContext(ctx).Model(new(T)))
		for _, p := range q.Preloads {
			tx = tx.Preload(p, orderByID)
		}
		err := tx.Order("id ASC").Offset(int(q.offset())).Limit(q.PerPage).Find(&items).Error
		if err != nil {
			return nil, g.translate("list", err)
		}
	}

	return newPage(items, total, q.Page, q.PerPage), nil
}

// Transaction runs fn in a transaction that is rolled back when fn fails.
// Errors are translated into the package kinds.
func (g *Gateway[T]) Transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := g.db.WithContext(ctx).Transaction(fn); err != nil {
		return g.translate(op, err)
	}
	return nil
}

func (g *Gateway[T]) translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isKind(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", g.entity, ErrNotFound)
	case isUniqueViolation(err):
		g.log(op).WithError(err).Warn("unique constraint rejected write")
		return fmt.Errorf("%s: %w", g.entity, ErrConflict)
	default:
		g.log(op).WithError(err).Error("persistence operation failed")
		return fmt.Errorf("%s %s: %w", op, g.entity, ErrPersistence)
	}
}

func (g *Gateway[T]) log(op string) *logrus.Entry {
	return logger.Component("repository").WithFields(logrus.Fields{
		"entity": g.entity,
		"op":     op,
	})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// likePattern builds a LIKE pattern matching term anywhere, with the
// wildcard characters in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
