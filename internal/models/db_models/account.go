package db_models

// Account emails are unique among live rows only, so a deleted account's
// address can register again.
type Account struct {
	BaseModel
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex:idx_accounts_email_live,where:deleted_at IS NULL;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         Role    `gorm:"type:varchar(16);not null;index" json:"role"`
	IsVerified   bool    `gorm:"not null;default:false" json:"is_verified"`
	Document     *string `json:"document,omitempty"`
	Contract     *string `json:"contract,omitempty"`
}
