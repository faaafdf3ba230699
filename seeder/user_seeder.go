package seeder

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"Attendify-Backend/models"
	"Attendify-Backend/pkg/password"
	"Attendify-Backend/repository"
)

// SeedAdminUser memastikan ada satu akun admin untuk bootstrap. Password
// diambil dari ADMIN_PASSWORD; jika kosong, dibuat acak dan dicatat ke log
// sekali saja.
func SeedAdminUser(userRepo *repository.UserRepository) {
	log.Println("Memulai seeding user admin...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@attendify.local"
	}

	adminUser, err := userRepo.FindUserByEmail(ctx, adminEmail)
	if err == nil && adminUser != nil {
		log.Println("User admin sudah ada, seeding user admin dilewati.")
		return
	}

	plainPassword := os.Getenv("ADMIN_PASSWORD")
	if plainPassword == "" {
		plainPassword = uuid.NewString()
		log.Printf("ADMIN_PASSWORD tidak di-set, password admin dibuat acak: %s", plainPassword)
	}

	hashedPassword, err := password.HashPassword(plainPassword)
	if err != nil {
		log.Fatalf("Gagal hash password admin: %v", err)
	}

	newAdmin := &models.User{
		Name:     "Admin Utama",
		Email:    adminEmail,
		Password: hashedPassword,
		Role:     "admin",
	}

	if _, err := userRepo.CreateUser(ctx, newAdmin); err != nil {
		log.Printf("Gagal menyimpan user admin: %v", err)
		return
	}
	log.Printf("User Admin (%s) berhasil ditambahkan.", adminEmail)
}
