package model

import "github.com/google/uuid"

// Subset read-only dari tabel users (direktori user eksternal);
// dipakai dispatcher untuk channel email saja.
type UserModel struct {
	UserID    uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	UserName  string    `gorm:"column:user_name;type:varchar(100)" json:"user_name"`
	UserEmail string    `gorm:"column:user_email;type:varchar(255)" json:"user_email"`
}

func (UserModel) TableName() string {
	return "users"
}

// Subset read-only dari tabel courses; judulnya dipakai di payload notifikasi.
type CourseModel struct {
	CourseID    uuid.UUID `gorm:"column:course_id;primaryKey;type:uuid" json:"course_id"`
	CourseTitle string    `gorm:"column:course_title;type:varchar(255)" json:"course_title"`
}

func (CourseModel) TableName() string {
	return "courses"
}
