package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"atithi/internal/config"
	"atithi/internal/database"
	"atithi/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM activity_logs")
	db.Exec("DELETE FROM housekeeping_tasks")
	db.Exec("DELETE FROM booking_payments")
	db.Exec("DELETE FROM booking_charges")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM guests")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	// ================== STAFF ==================
	log.Println("Creating staff accounts...")

	staff := []struct {
		email    string
		password string
		name     string
		role     domain.Role
	}{
		{"owner@atithi.in", "owner123", "Arjun Nair", domain.RoleOwner},
		{"manager@atithi.in", "manager123", "Priya Sharma", domain.RoleManager},
		{"desk@atithi.in", "desk123", "Rahul Gupta", domain.RoleReceptionist},
		{"housekeeping@atithi.in", "clean123", "Lakshmi Devi", domain.RoleHousekeeping},
		{"accounts@atithi.in", "ledger123", "Suresh Kumar", domain.RoleAccountant},
	}
	for _, s := range staff {
		hash, _ := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		user := domain.User{
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Role:         s.role,
			IsActive:     true,
		}
		db.Create(&user)
		log.Printf("Staff created: %s / %s (%s)", s.email, s.password, s.role)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	type roomSpec struct {
		floor    int
		count    int
		roomType string
		price    int64
	}
	specs := []roomSpec{
		{1, 6, "STANDARD", 1200},
		{2, 6, "DELUXE", 1800},
		{3, 4, "SUITE", 3500},
	}
	total := 0
	for _, spec := range specs {
		for i := 1; i <= spec.count; i++ {
			room := domain.Room{
				RoomNumber:    fmt.Sprintf("%d%02d", spec.floor, i),
				RoomType:      spec.roomType,
				PricePerNight: decimal.NewFromInt(spec.price),
				Status:        domain.RoomAvailable,
			}
			db.Create(&room)
			total++
		}
	}
	log.Printf("%d rooms created", total)

	// ================== GUESTS & BOOKINGS ==================
	log.Println("Creating sample guests and bookings...")

	guests := []domain.Guest{
		{FullName: "Asha Verma", Phone: "+91 98765 43210", Email: "asha@example.com", IDProofNumber: "AADH-4521"},
		{FullName: "Ravi Menon", Phone: "+91 91234 56789", Email: "ravi@example.com", IDProofNumber: "PASS-N8821"},
		{FullName: "Meera Iyer", Phone: "+91 99887 76655", Email: "meera@example.com"},
	}
	for i := range guests {
		db.Create(&guests[i])
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var room domain.Room
	db.Where("room_number = ?", "101").First(&room)

	booking := domain.Booking{
		GuestID:       guests[0].ID,
		RoomID:        &room.ID,
		CheckInDate:   today,
		CheckOutDate:  today.AddDate(0, 0, 2),
		Adults:        2,
		BaseAmount:    room.PricePerNight.Mul(decimal.NewFromInt(2)),
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
	db.Create(&booking)
	log.Printf("Booking #%d created for %s arriving today", booking.ID, guests[0].FullName)

	log.Println("Seed complete.")
}
