package db

import (
	"fmt"

	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
		&gormModels.User{},
		&gormModels.Airport{},
		&gormModels.AirplaneType{},
		&gormModels.Airplane{},
		&gormModels.Route{},
		&gormModels.Crew{},
		&gormModels.Flight{},
		&gormModels.Order{},
		&gormModels.Ticket{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
