package migration

import (
	"FeastForBeasts/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.StoreMeta{}); err != nil {
		log.Printf("Error migrating store meta database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Donation{}); err != nil {
		log.Printf("Error migrating donation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RewardLedgerEntry{}); err != nil {
		log.Printf("Error migrating reward ledger database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Profile{}); err != nil {
		log.Printf("Error migrating profile database: %v", err)
		return err
	}

	log.Println("Database migration complete")
	return nil
}
