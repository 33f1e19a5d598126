package model

import (
	"fmt"
	"time"
)

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	LoggedAt     *time.Time
}

// Profile is the outward view of a user, without the password hash.
type Profile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	LoggedAt  *time.Time `json:"logged_at,omitempty"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		LoggedAt:  u.LoggedAt,
	}
}

type Address struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UserID     int64  `gorm:"index;not null" json:"-"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// VerificationPurpose partitions the code keyspace. The values are wire
// format: they appear inside Redis keys and in request bodies.
type VerificationPurpose string

const (
	PurposePassword VerificationPurpose = "senha"
	PurposeEmail    VerificationPurpose = "email"
)

func (p VerificationPurpose) Valid() bool {
	return p == PurposePassword || p == PurposeEmail
}

// CodeKey addresses the single live verification code for (user, purpose).
func CodeKey(userID int64, purpose VerificationPurpose) string {
	return fmt.Sprintf("codigo:%d:%s", userID, purpose)
}

// EmailChangeKey addresses the code confirming a change to one candidate
// address, so requests for different targets stay independent.
func EmailChangeKey(userID int64, newEmail string) string {
	return fmt.Sprintf("verificar-email:%d:%s", userID, newEmail)
}

// Session is what a successful login yields.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
