package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	UserID        string     `gorm:"column:user_id"`
	RoomID        string     `gorm:"column:room_id"`
	BookingDate   time.Time  `gorm:"column:booking_date"`
	SessionType   string     `gorm:"column:session_type"`
	Status        string     `gorm:"column:status"`
	Notes         *string    `gorm:"column:notes"`
	DurationValue float64    `gorm:"column:duration_value"`
	ApprovedBy    *string    `gorm:"column:approved_by"`
	ApprovalNotes *string    `gorm:"column:approval_notes"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "booking_applications" }

func toDomainBooking(m bookingModel) *domain.BookingApplication {
	var notes, approvalNotes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.ApprovalNotes != nil {
		approvalNotes = *m.ApprovalNotes
	}

	b := &domain.BookingApplication{
		ID:            m.ID,
		UserID:        m.UserID,
		RoomID:        m.RoomID,
		BookingDate:   m.BookingDate,
		SessionType:   domain.SessionType(m.SessionType),
		Status:        domain.BookingStatus(m.Status),
		Notes:         notes,
		DurationValue: m.DurationValue,
		ApprovedBy:    m.ApprovedBy,
		ApprovalNotes: approvalNotes,
		CreatedAt:     m.CreatedAt,
	}
	if m.UpdatedAt != nil {
		b.UpdatedAt = *m.UpdatedAt
	}
	return b
}

func toBookingModel(b *domain.BookingApplication) bookingModel {
	var notes, approvalNotes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.ApprovalNotes != "" {
		v := b.ApprovalNotes
		approvalNotes = &v
	}

	m := bookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		BookingDate:   b.BookingDate,
		SessionType:   string(b.SessionType),
		Status:        string(b.Status),
		Notes:         notes,
		DurationValue: b.DurationValue,
		ApprovedBy:    b.ApprovedBy,
		ApprovalNotes: approvalNotes,
		CreatedAt:     b.CreatedAt,
	}
	if !b.UpdatedAt.IsZero() {
		v := b.UpdatedAt
		m.UpdatedAt = &v
	}
	return m
}

// Create inserts the application. The insert is a single atomic statement;
// the partial unique index idx_booking_slot_active rejects a second active
// application for the same slot, so a concurrent race surfaces here as a
// unique violation.
func (r *BookingRepository) Create(ctx context.Context, b *domain.BookingApplication) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.BookingApplication, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// SlotTaken reports whether an active (pending or approved) application
// already holds (room, date, session).
func (r *BookingRepository) SlotTaken(ctx context.Context, roomID string, date time.Time, session domain.SessionType) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("room_id = ? AND booking_date = ? AND session_type = ? AND status IN ('pending', 'approved')",
			roomID, date, string(session)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// CommittedInWindow sums the duration of the user's active applications in
// the property with a booking date inside [start, end).
func (r *BookingRepository) CommittedInWindow(ctx context.Context, userID, propertyID string, start, end time.Time) (float64, error) {
	var total float64
	q := `
SELECT COALESCE(SUM(ba.duration_value), 0)
FROM booking_applications ba
JOIN rooms rm ON rm.id = ba.room_id
WHERE ba.user_id = ?
  AND rm.property_id = ?
  AND ba.status IN ('pending', 'approved')
  AND ba.booking_date >= ?
  AND ba.booking_date < ?
`
	tx := r.db.WithContext(ctx).Raw(q, userID, propertyID, start, end).Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return total, nil
}

// ListByUser returns the user's applications, newest booking date first.
// Status and property filters are optional (empty string skips them).
func (r *BookingRepository) ListByUser(ctx context.Context, userID string, status domain.BookingStatus, propertyID string) ([]domain.BookingApplication, error) {
	var rows []bookingModel

	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("booking_applications.user_id = ?", userID)

	if status != "" {
		q = q.Where("booking_applications.status = ?", string(status))
	}
	if propertyID != "" {
		q = q.Joins("JOIN rooms rm ON rm.id = booking_applications.room_id").
			Where("rm.property_id = ?", propertyID)
	}

	tx := q.Order("booking_applications.booking_date DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BookingApplication, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Decide moves a pending application to a terminal status, recording the
// decider and notes. The pending guard makes the transition a compare-and-
// swap: of two concurrent decisions exactly one changes a row.
func (r *BookingRepository) Decide(ctx context.Context, id string, to domain.BookingStatus, decidedBy, notes string) (int64, error) {
	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":         string(to),
			"approved_by":    decidedBy,
			"approval_notes": notesPtr,
			"updated_at":     time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}
