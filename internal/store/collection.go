package store

import (
	"context"
	"errors"

	"brotech_admin/internal/model"
	"brotech_admin/pkg/utils/validation"

	"gorm.io/gorm"
)

// Collection is a named set of records of type T behind access rules.
// PT is *T and is used to reach RecordID.
type Collection[T any, PT interface {
	*T
	model.Record
}] struct {
	db      *gorm.DB
	name    string
	entity  string
	columns map[string]string
	rules   Rules

	// scope restricts which rows the caller may see
	scope func(ctx context.Context, tx *gorm.DB) *gorm.DB
}

func (c *Collection[T, PT]) Name() string {
	return c.name
}

func (c *Collection[T, PT]) session(ctx context.Context) *gorm.DB {
	tx := c.db.WithContext(ctx).Model(PT(new(T)))
	if c.scope != nil {
		tx = c.scope(ctx, tx)
	}
	return tx
}

// List returns the records matching q.
func (c *Collection[T, PT]) List(ctx context.Context, q Query) ([]T, error) {
	if err := c.rules.check(ctx, c.name, ActionRead); err != nil {
		return nil, err
	}
	tx, err := q.apply(c.session(ctx), c.columns)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, classify(err, c.name, ActionRead)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Count returns the number of records matching q, ignoring order and limit.
func (c *Collection[T, PT]) Count(ctx context.Context, q Query) (int, error) {
	if err := c.rules.check(ctx, c.name, ActionRead); err != nil {
		return 0, err
	}
	q.orders, q.limit = nil, 0
	tx, err := q.apply(c.session(ctx), c.columns)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, classify(err, c.name, ActionRead)
	}
	return int(n), nil
}

func (c *Collection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if err := c.rules.check(ctx, c.name, ActionRead); err != nil {
		return nil, err
	}

	var rec T
	err := c.session(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: c.entity, ID: id}
	}
	if err != nil {
		return nil, classify(err, c.name, ActionRead)
	}
	return &rec, nil
}

// Create stores rec and returns the assigned id. CreatedAt is set by the store.
func (c *Collection[T, PT]) Create(ctx context.Context, rec *T) (string, error) {
	if err := c.rules.check(ctx, c.name, ActionCreate); err != nil {
		return "", err
	}
	if err := c.db.WithContext(ctx).Create(rec).Error; err != nil {
		return "", classify(err, c.name, ActionCreate)
	}
	return PT(rec).RecordID(), nil
}

// Update merges fields into the record with id. Keys are record field names.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := c.rules.check(ctx, c.name, ActionUpdate); err != nil {
		return err
	}
	if len(fields) == 0 {
		return validation.New("", "nothing to update")
	}

	cols := make(map[string]any, len(fields))
	for k, v := range fields {
		col, ok := c.columns[k]
		if !ok || col == "id" || col == "created_at" {
			return validation.New(k, "field cannot be updated")
		}
		cols[col] = v
	}

	res := c.db.WithContext(ctx).Model(PT(new(T))).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return classify(res.Error, c.name, ActionUpdate)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: c.entity, ID: id}
	}
	return nil
}

func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	if err := c.rules.check(ctx, c.name, ActionDelete); err != nil {
		return err
	}

	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(PT(new(T)))
	if res.Error != nil {
		return classify(res.Error, c.name, ActionDelete)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: c.entity, ID: id}
	}
	return nil
}
