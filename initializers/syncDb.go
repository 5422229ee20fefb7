package initializers

import (
	"log"

	"github.com/Kariqs/amexan-store/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
