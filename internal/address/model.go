package address

import (
	"errors"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

// Address is a customer billing address as stored by the shop.
type Address struct {
	ID uuid.UUID

	FirstName string
	LastName  string
	Email     string
	Phone     string

	Address1      string
	City          string
	ZipPostalCode string

	StateProvinceID *uint
	CountryID       *uint
}
