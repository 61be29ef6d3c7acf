package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// NotID excludes a single row, used when counting sibling records.
type NotID struct {
	ID uuid.UUID
}

func (s NotID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// In matches any of the given values.
type In struct {
	Field  string
	Values []interface{}
}

func (s In) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s IN ?", s.Field)
	return db.Where(query, s.Values)
}

// CreatedAfter keeps rows created strictly after the given instant.
type CreatedAfter struct {
	Time time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.Time)
}

// DateBetween filters a date column to a closed range; used by analytics
// and CSV export.
type DateBetween struct {
	Field string
	From  time.Time
	To    time.Time
}

func (s DateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", s.Field), s.From, s.To)
}

// Search does a case-insensitive pattern match on a column.
type Search struct {
	Field string
	Query string
}

func (s Search) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s ILIKE ?", s.Field), "%"+s.Query+"%")
}
