package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	PropertyID  string    `gorm:"column:property_id"`
	Name        string    `gorm:"column:name"`
	Capacity    int       `gorm:"column:capacity"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Room{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		Capacity:    m.Capacity,
		Description: desc,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var desc *string
	if r.Description != "" {
		v := r.Description
		desc = &v
	}
	return roomModel{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Description: desc,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListActiveByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	var rows []roomModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"capacity":    m.Capacity,
			"description": m.Description,
			"is_active":   m.IsActive,
		}).Error
}
