package user

import "time"

type User struct {
	ID           string    `db:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Email        string    `db:"email" gorm:"column:email;uniqueIndex;not null"`
	Username     string    `db:"username" gorm:"column:username;uniqueIndex;not null"`
	FullName     string    `db:"full_name" gorm:"column:full_name;not null"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	Role         string    `db:"role" gorm:"column:role;not null"`
	IsActive     bool      `db:"is_active" gorm:"column:is_active;not null"`
	CreatedAt    time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime:false"`
}

func (User) TableName() string {
	return "users"
}
