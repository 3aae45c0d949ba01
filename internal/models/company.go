package models

import "time"

type Company struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	VATNumber  string    `db:"vat_number" json:"vat_number"`
	FiscalCode string    `db:"fiscal_code" json:"fiscal_code"`
	Address    string    `db:"address" json:"address"`
	City       string    `db:"city" json:"city"`
	Province   string    `db:"province" json:"province"`
	ZipCode    string    `db:"zip_code" json:"zip_code"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
