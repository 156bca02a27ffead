package main

import (
	"log"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
)

func main() {
	log.Println("Starting standalone migration run...")

	config.Load()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	log.Println("Migrations completed successfully")
}
