package implementation

import (
	"context"

	"procureflow-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SequenceRepositoryImpl struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) contract.SequenceRepository {
	return &SequenceRepositoryImpl{db: db}
}

// Next increments the (prefix, year) counter and returns the new value.
// The upsert keeps it safe under concurrent callers: the row is created on
// first use, and RETURNING reads the value written by this statement.
func (r *SequenceRepositoryImpl) Next(ctx context.Context, prefix string, year int) (int64, error) {
	var counter int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (prefix, year, counter)
		VALUES (?, ?, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET counter = document_sequences.counter + 1
		RETURNING counter
	`, prefix, year).Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}
