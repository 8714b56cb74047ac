package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"roomshare/internal/database"
	"roomshare/internal/domain"
	"roomshare/internal/modules/allocation"
	"roomshare/internal/repository"
)

// Seeds a local database with two demo users sharing a property, its
// rooms and a few booking applications in different states.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "roomshare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_applications")
	db.Exec("DELETE FROM time_allocations")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM property_members")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	members := repository.NewMemberRepository(db)
	rooms := repository.NewRoomRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	alice := mustUser(ctx, users, "alice", "alice@example.com")
	bob := mustUser(ctx, users, "bob", "bob@example.com")
	carol := mustUser(ctx, users, "carol", "carol@example.com")

	log.Println("Creating property...")
	house := &domain.Property{
		Name:        "Lakeside House",
		Description: "Shared family house with two bookable rooms",
		OwnerID:     alice.ID,
		IsActive:    true,
	}
	if err := properties.Create(ctx, house, allocation.Defaults("")); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating memberships...")
	bobEdge := &domain.PropertyMember{
		PropertyID:       house.ID,
		UserID:           bob.ID,
		Role:             domain.MemberRoleAdmin,
		InvitationStatus: domain.InvitationPending,
	}
	if err := members.Create(ctx, bobEdge); err != nil {
		log.Fatal(err)
	}
	if _, err := members.UpdateStatus(ctx, bobEdge.ID, domain.InvitationAccepted); err != nil {
		log.Fatal(err)
	}

	// carol's invitation stays pending, so she has no access yet
	carolEdge := &domain.PropertyMember{
		PropertyID:       house.ID,
		UserID:           carol.ID,
		Role:             domain.MemberRoleMember,
		InvitationStatus: domain.InvitationPending,
	}
	if err := members.Create(ctx, carolEdge); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating rooms...")
	den := &domain.Room{
		PropertyID:  house.ID,
		Name:        "Den",
		Capacity:    4,
		Description: "Ground floor den with a projector",
		IsActive:    true,
	}
	studio := &domain.Room{
		PropertyID:  house.ID,
		Name:        "Studio",
		Capacity:    2,
		Description: "Attic studio, quiet",
		IsActive:    true,
	}
	for _, room := range []*domain.Room{den, studio} {
		if err := rooms.Create(ctx, room); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating booking applications...")
	nextMonday := nextWeekday(time.Now().UTC(), time.Monday)

	pending := &domain.BookingApplication{
		UserID:        bob.ID,
		RoomID:        den.ID,
		BookingDate:   nextMonday,
		SessionType:   domain.SessionMorning,
		Status:        domain.BookingPending,
		Notes:         "Morning reading session",
		DurationValue: allocation.DefaultMorningDuration,
	}
	if err := bookings.Create(ctx, pending); err != nil {
		log.Fatal(err)
	}

	approved := &domain.BookingApplication{
		UserID:        bob.ID,
		RoomID:        studio.ID,
		BookingDate:   nextMonday.AddDate(0, 0, 1),
		SessionType:   domain.SessionEvening,
		Status:        domain.BookingPending,
		Notes:         "Band practice",
		DurationValue: allocation.DefaultEveningDuration,
	}
	if err := bookings.Create(ctx, approved); err != nil {
		log.Fatal(err)
	}
	if _, err := bookings.Decide(ctx, approved.ID, domain.BookingApproved, alice.ID, "Fine by me"); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed completed")
	log.Println("Accounts (password for all: Password1):")
	log.Println("  alice@example.com  (owner)")
	log.Println("  bob@example.com    (admin member)")
	log.Println("  carol@example.com  (pending invitation)")
}

func mustUser(ctx context.Context, users *repository.UserRepository, username, email string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := &domain.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		EmailVerified: true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal(err)
	}
	return u
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	d := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == day {
			return d
		}
	}
}
