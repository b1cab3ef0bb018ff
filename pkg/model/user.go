package model

import "time"

// User carries the wallet balance. Passwords are stored as bcrypt hashes
// only; the hash never leaves the wallet package.
type User struct {
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"_id"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
	Balance      float64   `json:"balance" bson:"balance"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TopUpInput struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
