// Package domain defines the value types shared by the repository, service
// and HTTP layers. Shop, product, cart and order state lives behind stored
// procedures; only the tables queried directly are mapped here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RegisterSession is an in-progress sign-up. Each field is filled by one
// registration step before the row is submitted as a user.
//
// Fields:
//   - ID: session token, also the REGSSID cookie value.
//   - Email / Phone / Username / Password: NULL until their step succeeds.
//   - CreatedAt: used by the backend to expire abandoned sessions.
type RegisterSession struct {
	ID        uuid.UUID `json:"id"                 gorm:"type:uuid;primaryKey"`
	Email     *string   `json:"email,omitempty"    gorm:"type:varchar(254)"`
	Phone     *string   `json:"phone,omitempty"    gorm:"type:varchar(16)"`
	Username  *string   `json:"username,omitempty" gorm:"type:varchar(64)"`
	Password  *string   `json:"-"                  gorm:"type:varchar(128)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for RegisterSession.
func (RegisterSession) TableName() string { return "user_register_session" }

// User is a registered account. Only the columns read or written outside
// stored procedures are mapped.
type User struct {
	ID       uuid.UUID `json:"id"                 gorm:"type:uuid;primaryKey"`
	Username string    `json:"username"           gorm:"type:varchar(64);not null;uniqueIndex"`
	Email    string    `json:"email"              gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone    string    `json:"phone"              gorm:"type:varchar(16);not null;uniqueIndex"`
	Nickname *string   `json:"nickname,omitempty" gorm:"type:varchar(64)"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// RegisterField is a column of RegisterSession that a registration step
// may read or write.
type RegisterField string

const (
	FieldEmail    RegisterField = "email"
	FieldPhone    RegisterField = "phone"
	FieldUsername RegisterField = "username"
	FieldPassword RegisterField = "password"
)

// Readable reports whether the field may be echoed back to the client.
func (f RegisterField) Readable() bool {
	return f == FieldEmail || f == FieldPhone || f == FieldUsername
}

// Unique reports whether the field must not collide with an existing user.
func (f RegisterField) Unique() bool { return f.Readable() }

// Valid reports whether f names a registration column.
func (f RegisterField) Valid() bool { return f.Readable() || f == FieldPassword }
