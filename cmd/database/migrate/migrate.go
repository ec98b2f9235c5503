package migration

import (
	"Billfold-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Bill{}); err != nil {
		log.Fatalf("Error migrating bill database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.BillItem{}); err != nil {
		log.Fatalf("Error migrating bill item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Contact{}); err != nil {
		log.Fatalf("Error migrating contact database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
