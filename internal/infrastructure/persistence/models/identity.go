package models

import "github.com/mrtoldo/backend/internal/domain/identity"

// UserModel maps dashboard logins. The hash lives in the legacy "password" column.
type UserModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null"`
}

func (UserModel) TableName() string { return "users" }

// UserFromDomain builds the row for u
func UserFromDomain(u *identity.User) *UserModel {
	m := &UserModel{Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
	}
}
