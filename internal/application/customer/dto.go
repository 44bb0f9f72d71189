package customer

import (
	"time"

	"github.com/softhouse/customers/internal/domain/customer"
)

// CreateCustomerRequest is the payload for creating or replacing a
// customer. The customer id is never accepted from the payload.
type CreateCustomerRequest struct {
	Name    string                `json:"name" binding:"required,min=1,max=200"`
	Address *CustomerAddressInput `json:"address" binding:"required"`
}

// CustomerAddressInput carries the postal code the address is resolved from.
type CustomerAddressInput struct {
	PostalCode string `json:"postalCode" binding:"required,min=8,max=9"`
}

// CustomerResponse is the wire representation of a customer.
type CustomerResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Address   AddressResponse `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AddressResponse is the wire representation of a resolved address.
type AddressResponse struct {
	PostalCode    string `json:"postalCode"`
	Street        string `json:"street"`
	Complement    string `json:"complement"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	StateCode     string `json:"stateCode"`
	CityCode      string `json:"cityCode"`
	GeoAreaCode   string `json:"geoAreaCode"`
	DialCode      string `json:"dialCode"`
	TaxRegionCode string `json:"taxRegionCode"`
}

// ToCustomerResponse converts a domain customer to its wire representation.
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   ToAddressResponse(c.Address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToAddressResponse converts a domain address to its wire representation.
func ToAddressResponse(a *customer.Address) AddressResponse {
	if a == nil {
		return AddressResponse{}
	}
	return AddressResponse{
		PostalCode:    a.PostalCode,
		Street:        a.Street,
		Complement:    a.Complement,
		Neighborhood:  a.Neighborhood,
		City:          a.City,
		StateCode:     a.StateCode,
		CityCode:      a.CityCode,
		GeoAreaCode:   a.GeoAreaCode,
		DialCode:      a.DialCode,
		TaxRegionCode: a.TaxRegionCode,
	}
}
