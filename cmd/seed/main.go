// Seeds the demo dataset: an admin account, the "Kanper Startup"
// employer with an invite code, and one verified employee.
package main

import (
	"log"
	"os"

	"salarysync/internal/config"
	"salarysync/internal/models"
	"salarysync/internal/repositories"
	"salarysync/internal/utils"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seedAdmin(adminEmail, adminPassword)
	employer := seedEmployer()
	seedEmployee(employer)

	log.Println("Seed complete")
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:        email,
		Password:     hashed,
		Name:         "Platform Admin",
		Role:         models.RoleAdmin,
		Status:       models.UserActive,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Println("Admin account created")
}

func seedEmployer() *models.Employer {
	var existing models.Employer
	if err := repositories.DB.Where("company_name = ?", "Kanper Startup").First(&existing).Error; err == nil {
		log.Println("Demo employer already exists")
		return &existing
	}

	tempPassword := utils.GenerateTempPassword()
	hashed, err := utils.HashPassword(tempPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	login := models.User{
		Email:        "employer@kanper.io",
		Password:     hashed,
		Name:         "Ravi Kumar",
		Role:         models.RoleEmployer,
		Status:       models.UserActive,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&login).Error; err != nil {
		log.Fatal("Failed to create employer login:", err)
	}

	employer := models.Employer{
		InviteCode:   utils.GenerateInviteCode(),
		UserID:       &login.ID,
		CompanyName:  "Kanper Startup",
		ContactName:  "Ravi Kumar",
		ContactEmail: "employer@kanper.io",
		Size:         "11-50",
		Status:       models.EmployerActive,
	}
	if err := repositories.DB.Create(&employer).Error; err != nil {
		log.Fatal("Failed to create employer:", err)
	}

	log.Printf("Demo employer created, invite code %s, login employer@kanper.io / %s",
		employer.InviteCode, tempPassword)
	return &employer
}

func seedEmployee(employer *models.Employer) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", "asha@kanper.io").First(&existing).Error; err == nil {
		log.Println("Demo employee already exists")
		return
	}

	hashed, err := utils.HashPassword("Asha@12345")
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	employee := models.User{
		Email:              "asha@kanper.io",
		Password:           hashed,
		Name:               "Asha Verma",
		Role:               models.RoleEmployee,
		Status:             models.UserActive,
		TokenVersion:       1,
		EmployerID:         &employer.ID,
		MonthlySalary:      30000,
		DaysWorked:         18,
		VerificationStatus: models.VerificationApproved,
		DocumentVerified:   true,
	}
	if err := repositories.DB.Create(&employee).Error; err != nil {
		log.Fatal("Failed to create demo employee:", err)
	}

	if err := repositories.DB.Model(employer).
		UpdateColumn("total_employees", employer.TotalEmployees+1).Error; err != nil {
		log.Printf("Failed to bump employer headcount: %v", err)
	}

	log.Println("Demo employee created, login asha@kanper.io / Asha@12345")
}
