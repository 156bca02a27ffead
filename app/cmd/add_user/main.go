package main

import (
	"flag"
	"fmt"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func main() {
	email := flag.String("email", "", "email address for the new user")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "admin", "role: admin or teacher")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name X] [-last-name Y] [-role admin|teacher]")
		return
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      models.UserRole(*role),
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s (%s)\n", user.FullName(), user.Email)
}
