package model

import (
	"strconv"

	"gorm.io/gorm"
)

type Employee struct {
	gorm.Model
	Name      string `gorm:"column:name;not null"`
	Email     string `gorm:"column:email;size:255;not null;uniqueIndex:idx_employees_email"`
	Age       int    `gorm:"column:age;not null"`
	CreatedBy uint   `gorm:"column:created_by;not null;index:idx_employees_created_by"`
}

func (e *Employee) PublicID() string {
	return strconv.FormatUint(uint64(e.ID), 10)
}
