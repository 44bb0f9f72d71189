package models

import (
	"time"

	"github.com/softhouse/customers/internal/domain/customer"
)

// AddressModel is the persistence model for the Address domain entity.
// Addresses are keyed by postal code and shared across customers.
type AddressModel struct {
	PostalCode    string    `gorm:"column:postal_code;type:varchar(9);primaryKey"`
	Street        string    `gorm:"type:varchar(200)"`
	Complement    string    `gorm:"type:varchar(200)"`
	Neighborhood  string    `gorm:"type:varchar(100)"`
	City          string    `gorm:"type:varchar(100)"`
	StateCode     string    `gorm:"type:varchar(2)"`
	CityCode      string    `gorm:"type:varchar(10)"`
	GeoAreaCode   string    `gorm:"type:varchar(10)"`
	DialCode      string    `gorm:"type:varchar(4)"`
	TaxRegionCode string    `gorm:"type:varchar(10)"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "customer_addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		PostalCode:    m.PostalCode,
		Street:        m.Street,
		Complement:    m.Complement,
		Neighborhood:  m.Neighborhood,
		City:          m.City,
		StateCode:     m.StateCode,
		CityCode:      m.CityCode,
		GeoAreaCode:   m.GeoAreaCode,
		DialCode:      m.DialCode,
		TaxRegionCode: m.TaxRegionCode,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Address.
func (m *AddressModel) FromDomain(a *customer.Address) {
	m.PostalCode = a.PostalCode
	m.Street = a.Street
	m.Complement = a.Complement
	m.Neighborhood = a.Neighborhood
	m.City = a.City
	m.StateCode = a.StateCode
	m.CityCode = a.CityCode
	m.GeoAreaCode = a.GeoAreaCode
	m.DialCode = a.DialCode
	m.TaxRegionCode = a.TaxRegionCode
	m.CreatedAt = a.CreatedAt
}

// AddressModelFromDomain creates a new persistence model from a domain Address.
func AddressModelFromDomain(a *customer.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	ID                int64        `gorm:"primaryKey;autoIncrement"`
	Name              string       `gorm:"type:varchar(200);not null"`
	AddressPostalCode string       `gorm:"column:address_postal_code;type:varchar(9);not null;index"`
	Address           AddressModel `gorm:"foreignKey:AddressPostalCode;references:PostalCode"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address.ToDomain(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.ID = c.ID
	m.Name = c.Name
	m.AddressPostalCode = c.Address.PostalCode
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
