package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	OwnerID     string    `gorm:"column:owner_id"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Property{
		ID:          m.ID,
		Name:        m.Name,
		Description: desc,
		OwnerID:     m.OwnerID,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var desc *string
	if p.Description != "" {
		v := p.Description
		desc = &v
	}
	return propertyModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: desc,
		OwnerID:     p.OwnerID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// Create inserts the property together with its time allocation in one
// transaction; a property never exists without its policy row.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property, alloc *domain.TimeAllocation) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	alloc.PropertyID = p.ID
	if alloc.ID == "" {
		alloc.ID = uuid.NewString()
	}
	if alloc.CreatedAt.IsZero() {
		alloc.CreatedAt = p.CreatedAt
	}

	pm := toPropertyModel(p)
	am := toAllocationModel(alloc)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		return tx.Create(&am).Error
	})
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

// ListForUser returns active properties the user owns or is an accepted
// member of.
func (r *PropertyRepository) ListForUser(ctx context.Context, userID string) ([]domain.Property, error) {
	var rows []propertyModel
	q := `
SELECT DISTINCT p.*
FROM properties p
LEFT JOIN property_members pm
  ON pm.property_id = p.id AND pm.user_id = ? AND pm.invitation_status = 'accepted'
WHERE p.is_active = TRUE
  AND (p.owner_id = ? OR pm.id IS NOT NULL)
ORDER BY p.created_at
`
	tx := r.db.WithContext(ctx).Raw(q, userID, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	return r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"description": m.Description,
			"is_active":   m.IsActive,
		}).Error
}
