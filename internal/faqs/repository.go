package faqs

import (
	"context"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one question/answer pair supplied by an owner on update.
type Entry struct {
	Question string
	Answer   string
}

// Repository persists FAQ rows for services, blogs, and location pages.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListForOwner returns the owner's FAQs in display order.
func (r *Repository) ListForOwner(ctx context.Context, kind enums.FAQOwnerKind, ownerID uuid.UUID) ([]models.FAQ, error) {
	var rows []models.FAQ
	err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceForOwner swaps the owner's FAQ set wholesale, preserving submission
// order as position.
func (r *Repository) ReplaceForOwner(ctx context.Context, kind enums.FAQOwnerKind, ownerID uuid.UUID, entries []Entry) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("owner_kind = ? AND owner_id = ?", kind, ownerID).Delete(&models.FAQ{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.FAQ, len(entries))
	for i, entry := range entries {
		rows[i] = models.FAQ{
			OwnerKind: kind,
			OwnerID:   ownerID,
			Question:  entry.Question,
			Answer:    entry.Answer,
			Position:  i,
		}
	}
	return tx.Create(&rows).Error
}

// DeleteForOwner removes all FAQs tied to the owner. Owners call this when
// they are deleted themselves.
func (r *Repository) DeleteForOwner(ctx context.Context, kind enums.FAQOwnerKind, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Delete(&models.FAQ{}).Error
}
