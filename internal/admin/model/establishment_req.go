package model

import "strings"

// EstablishmentReq carries the multipart form fields for create and update.
// The logo file is read separately by the handler.
type EstablishmentReq struct {
	Name         string `form:"name" validate:"required,max=128"`
	StreetNumber string `form:"street_number" validate:"required,max=16"`
	StreetName   string `form:"street_name" validate:"required,max=128"`
	PostalCode   string `form:"postal_code" validate:"required,len=5,numeric"`
	City         string `form:"city" validate:"required,max=64"`
	Phone        string `form:"phone" validate:"required,len=10,numeric"`
}

func (r *EstablishmentReq) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.StreetNumber = strings.TrimSpace(r.StreetNumber)
	r.StreetName = strings.TrimSpace(r.StreetName)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	r.City = strings.TrimSpace(r.City)
	r.Phone = strings.TrimSpace(r.Phone)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
