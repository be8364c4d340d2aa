package model

import (
	"strconv"

	"gorm.io/gorm"
)

// Unique index names; the repository maps violations back to fields by name.
const (
	IndexUsersUsername  = "idx_users_username"
	IndexUsersEmail     = "idx_users_email"
	IndexEmployeesEmail = "idx_employees_email"
)

// User holds credentials. Password is plaintext only between construction
// and UserRepository.Create; once persisted it is a bcrypt hash.
type User struct {
	gorm.Model
	Username  string  `gorm:"column:username;not null;uniqueIndex:idx_users_username"`
	Email     string  `gorm:"column:email;size:255;not null;uniqueIndex:idx_users_email"`
	Password  string  `gorm:"column:password;not null"`
	BirthCity *string `gorm:"column:birth_city"`
}

// PublicID is the identifier exposed in tokens and resources.
func (u *User) PublicID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
