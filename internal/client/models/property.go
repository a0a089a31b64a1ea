package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "HOUSE"
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeOffice    PropertyType = "OFFICE"
	PropertyTypeLot       PropertyType = "LOT"
	PropertyTypeFarm      PropertyType = "FARM"
)

var PropertyTypes = []PropertyType{
	PropertyTypeHouse, PropertyTypeApartment, PropertyTypeOffice, PropertyTypeLot, PropertyTypeFarm,
}

type TransactionType string

const (
	TransactionSale TransactionType = "SALE"
	TransactionRent TransactionType = "RENT"
)

var TransactionTypes = []TransactionType{TransactionSale, TransactionRent}

// Ref is a backend identifier that may be serialised either as a JSON
// number or a JSON string. It marshals back as a number when numeric.
type Ref string

func (r Ref) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(r), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(r))
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ref: %w", err)
	}
	*r = Ref(n.String())
	return nil
}

// PropertyRequest is the writable part of a listing.
type PropertyRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	Price           float64         `json:"price"`
	Area            float64         `json:"area"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Garages         int             `json:"garages"`
	PropertyType    PropertyType    `json:"propertyType"`
	TransactionType TransactionType `json:"transactionType"`
	Available       bool            `json:"available"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	UserID          Ref             `json:"userId,omitempty"`
}

// Property is a listing as returned by the backend, with its owner.
type Property struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	Price           float64         `json:"price"`
	Area            float64         `json:"area"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Garages         int             `json:"garages"`
	PropertyType    PropertyType    `json:"propertyType"`
	TransactionType TransactionType `json:"transactionType"`
	Available       bool            `json:"available"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`

	UserID    Ref    `json:"userId,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	UserPhone string `json:"userPhone,omitempty"`
}

// Request converts a fetched listing back into an editable request.
func (p Property) Request() PropertyRequest {
	return PropertyRequest{
		Title:           p.Title,
		Description:     p.Description,
		Address:         p.Address,
		City:            p.City,
		State:           p.State,
		Price:           p.Price,
		Area:            p.Area,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Garages:         p.Garages,
		PropertyType:    p.PropertyType,
		TransactionType: p.TransactionType,
		Available:       p.Available,
		ImageURL:        p.ImageURL,
		UserID:          p.UserID,
	}
}

// ImageUpload is the response of the image upload endpoint.
type ImageUpload struct {
	ImageURL string `json:"imageUrl"`
}
