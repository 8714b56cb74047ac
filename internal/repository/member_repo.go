package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

type memberModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	PropertyID       string    `gorm:"column:property_id"`
	UserID           string    `gorm:"column:user_id"`
	Role             string    `gorm:"column:role"`
	InvitationStatus string    `gorm:"column:invitation_status"`
	JoinedAt         time.Time `gorm:"column:joined_at"`
}

func (memberModel) TableName() string { return "property_members" }

func toDomainMember(m memberModel) *domain.PropertyMember {
	return &domain.PropertyMember{
		ID:               m.ID,
		PropertyID:       m.PropertyID,
		UserID:           m.UserID,
		Role:             domain.MemberRole(m.Role),
		InvitationStatus: domain.InvitationStatus(m.InvitationStatus),
		JoinedAt:         m.JoinedAt,
	}
}

func toMemberModel(pm *domain.PropertyMember) memberModel {
	return memberModel{
		ID:               pm.ID,
		PropertyID:       pm.PropertyID,
		UserID:           pm.UserID,
		Role:             string(pm.Role),
		InvitationStatus: string(pm.InvitationStatus),
		JoinedAt:         pm.JoinedAt,
	}
}

func (r *MemberRepository) Create(ctx context.Context, pm *domain.PropertyMember) error {
	if pm.ID == "" {
		pm.ID = uuid.NewString()
	}
	if pm.JoinedAt.IsZero() {
		pm.JoinedAt = time.Now().UTC()
	}
	m := toMemberModel(pm)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*pm = *toDomainMember(m)
	return nil
}

// GetMembership looks up the membership edge for (property, user).
// Returns gorm.ErrRecordNotFound when no edge exists.
func (r *MemberRepository) GetMembership(ctx context.Context, propertyID, userID string) (*domain.PropertyMember, error) {
	var m memberModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMember(m), nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.PropertyMember, error) {
	var m memberModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMember(m), nil
}

func (r *MemberRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.PropertyMember, error) {
	var rows []memberModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("joined_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PropertyMember, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMember(m))
	}
	return out, nil
}

// UpdateStatus records the invitee's answer. Guarded on the current
// pending status so an invitation can only be answered once; returns the
// number of rows changed.
func (r *MemberRepository) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&memberModel{}).
		Where("id = ? AND invitation_status = ?", id, string(domain.InvitationPending)).
		Update("invitation_status", string(status))
	return tx.RowsAffected, tx.Error
}
