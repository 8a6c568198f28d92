package main

import (
	"log"
	"os"
	"strings"

	"anpr/models"
	"anpr/pkg/anpr"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Roles first so the users FK can be applied safely; migrate models
		// individually so a failure on one doesn't block the others.
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
		for _, m := range []interface{}{
			&models.User{},
			&models.RefreshToken{},
			&models.Owner{},
			&models.Vehicle{},
			&models.FineLog{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				log.Printf("migration warning (%T): %v", m, err)
			}
		}
	}
	seedDB()
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Seed admin user
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{Username: "admin", RoleID: &rid}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}

	seedDemoFleet()
	ensureUploadBase()
}

// seedDemoFleet inserts the demo owners and vehicles used for notice lookups.
// Mock data only.
func seedDemoFleet() {
	fleet := []struct {
		owner models.Owner
		plate string
		vtype string
	}{
		{models.Owner{Name: "Asha Verma", Email: "asha.verma@example.com", Phone: "+91-9800000001"}, "22BH6517A", "Car"},
		{models.Owner{Name: "Rahul Nair", Email: "rahul.nair@example.com", Phone: "+91-9800000002"}, "MH12DE1433", "Motorcycle"},
		{models.Owner{Name: "Priya Singh", Email: "priya.singh@example.com", Phone: "+91-9800000003"}, "DL8CAF5031", "Truck"},
	}
	for _, f := range fleet {
		var cnt int64
		db.Model(&models.Vehicle{}).Where("plate_number = ?", f.plate).Count(&cnt)
		if cnt > 0 {
			continue
		}
		owner := f.owner
		if err := db.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
			log.Printf("seed owner %s: %v", f.owner.Name, err)
			continue
		}
		v := models.Vehicle{PlateNumber: f.plate, VehicleType: f.vtype, OwnerID: owner.ID}
		if err := db.Create(&v).Error; err != nil {
			log.Printf("seed vehicle %s: %v", f.plate, err)
		}
	}
}

// findOwnerByPlate resolves the registered owner for a recognized plate.
// The plate is canonicalized first so raw OCR output can be passed directly.
func findOwnerByPlate(plate string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := db.Preload("Owner").Where("plate_number = ?", anpr.CanonicalizePlate(plate)).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ensureUploadBase creates the base uploads directory.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// uploadBaseDir returns the base directory for stored uploads (env UPLOAD_BASE
// overrides the config file).
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	if serverCfg.Server.UploadBase != "" {
		return serverCfg.Server.UploadBase
	}
	return "uploads"
}
