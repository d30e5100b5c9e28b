package model

// swagger:model User
type User struct {
	UUIDBase
	Email       string `gorm:"size:100;unique;not null" json:"email"`
	Password    string `gorm:"size:100;not null" json:"-"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	IsSuperuser bool   `gorm:"default:false" json:"isSuperuser"`
	IsVerified  bool   `gorm:"default:false" json:"isVerified"`
}

func (User) TableName() string {
	return "users"
}
