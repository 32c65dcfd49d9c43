package models

// UserModel and TeamModel map the host platform's directory tables. The
// support desk reads them but never migrates or writes them.

type UserModel struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:128;not null"`
	Email  string `gorm:"size:128;not null"`
	TeamID *uint  `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

type TeamModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:128;not null"`
}

func (TeamModel) TableName() string {
	return "teams"
}
