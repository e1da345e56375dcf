package models

// AccessType is the authorization level of a user.
type AccessType = string

const (
	AccessTypeAdmin AccessType = "admin"
	AccessTypeUser  AccessType = "user"
)

// User is an operator of the tracker. Users exist once per brand; the same
// username may be registered under both brands.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"size:80;not null;uniqueIndex:uq_username_brand" json:"username"`
	Brand      Brand      `gorm:"size:20;not null;default:'Vivo';uniqueIndex:uq_username_brand" json:"brand"`
	Password   string     `gorm:"size:200;not null" json:"-"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	AccessType AccessType `gorm:"size:20;not null" json:"access_type"`
}

// IsAdmin reports whether the user may perform administrative mutations.
func (u *User) IsAdmin() bool {
	return u.AccessType == AccessTypeAdmin
}
