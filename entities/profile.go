package entities

type Profile struct {
	UserID    string `gorm:"primaryKey;size:64" json:"user_id"`
	Name      string `json:"name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:32" json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url"`
	Role      string `gorm:"size:16;not null" json:"role"`
	Timestamp
}
