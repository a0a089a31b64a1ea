package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
)

type Login struct {
	Email    string `form:"email" validate:"simpleemail"`
	Password string `form:"password" validate:"required"`
}

func (f Login) Request() models.LoginRequest {
	return models.LoginRequest{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

type Register struct {
	Name            string `form:"name" validate:"notblank"`
	Username        string `form:"username" validate:"notblank"`
	Email           string `form:"email" validate:"simpleemail"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Document        string `form:"document" validate:"notblank"`
	Phone           string `form:"phone"`
	BirthDate       string `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

func (f Register) Request() models.UserRequest {
	return models.UserRequest{
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Username:  strings.TrimSpace(f.Username),
		Password:  f.Password,
		Phone:     strings.TrimSpace(f.Phone),
		BirthDate: f.BirthDate,
		Document:  strings.TrimSpace(f.Document),
	}
}

type ForgotPassword struct {
	Email string `form:"email" validate:"simpleemail"`
}

// Verify carries the emailed code. Token is only set when the user types
// the verification token in by hand.
type Verify struct {
	Code  string `form:"code" validate:"required,trimlen=6"`
	Token string `form:"token"`
}

type ResetPassword struct {
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Code            string `form:"code" validate:"required,trimlen=6"`
	Token           string `form:"token"`
}

// Profile holds the editable profile fields; blank fields are left
// unchanged.
type Profile struct {
	Name      string `form:"name"`
	Username  string `form:"username"`
	Phone     string `form:"phone"`
	BirthDate string `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Document  string `form:"document"`
}

func ProfileFrom(id models.Identity) Profile {
	return Profile{
		Name:      id.Name,
		Username:  id.Username,
		Phone:     id.Phone,
		BirthDate: id.BirthDate,
		Document:  id.Document,
	}
}

func (f Profile) Request() models.UserUpdateRequest {
	return models.UserUpdateRequest{
		Name:      strings.TrimSpace(f.Name),
		Username:  strings.TrimSpace(f.Username),
		Phone:     strings.TrimSpace(f.Phone),
		BirthDate: strings.TrimSpace(f.BirthDate),
		Document:  strings.TrimSpace(f.Document),
	}
}

type Property struct {
	Title           string                 `form:"title" validate:"notblank"`
	Description     string                 `form:"description"`
	Address         string                 `form:"address"`
	City            string                 `form:"city" validate:"notblank"`
	State           string                 `form:"state"`
	Price           float64                `form:"price" validate:"gt=0"`
	Area            float64                `form:"area" validate:"gte=0"`
	Bedrooms        int                    `form:"bedrooms" validate:"gte=0"`
	Bathrooms       int                    `form:"bathrooms" validate:"gte=0"`
	Garages         int                    `form:"garages" validate:"gte=0"`
	PropertyType    models.PropertyType    `form:"property_type" validate:"required,oneof=HOUSE APARTMENT OFFICE LOT FARM"`
	TransactionType models.TransactionType `form:"transaction_type" validate:"required,oneof=SALE RENT"`
	Available       bool                   `form:"available"`
	ImageURL        string                 `form:"image_url"`

	// Owner of an existing listing; new listings belong to the session user.
	Owner models.Ref `form:"-" validate:"-"`
}

// NewProperty returns the defaults of a fresh listing form.
func NewProperty() Property {
	return Property{
		PropertyType:    models.PropertyTypeHouse,
		TransactionType: models.TransactionSale,
		Available:       true,
	}
}

func PropertyFrom(p models.Property) Property {
	return Property{
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
		Owner:           p.UserID,
	}
}

func (f Property) Request(owner models.Ref) models.PropertyRequest {
	return models.PropertyRequest{
		Title:           strings.TrimSpace(f.Title),
		Description:     strings.TrimSpace(f.Description),
		Address:         strings.TrimSpace(f.Address),
		City:            strings.TrimSpace(f.City),
		State:           strings.TrimSpace(f.State),
		Price:           f.Price,
		Area:            f.Area,
		Bedrooms:        f.Bedrooms,
		Bathrooms:       f.Bathrooms,
		Garages:         f.Garages,
		PropertyType:    f.PropertyType,
		TransactionType: f.TransactionType,
		Available:       f.Available,
		ImageURL:        f.ImageURL,
		UserID:          owner,
	}
}

// PriceRange bounds are both required; nil means not entered.
type PriceRange struct {
	Min *float64 `form:"min_price" validate:"required"`
	Max *float64 `form:"max_price" validate:"required"`
}

func priceRangeRule(sl validator.StructLevel) {
	r := sl.Current().Interface().(PriceRange)
	if r.Min != nil && *r.Min < 0 {
		sl.ReportError(r.Min, "min_price", "Min", "gte", "0")
	}
	if r.Min != nil && r.Max != nil && *r.Max < *r.Min {
		sl.ReportError(r.Max, "max_price", "Max", "gtefield", "min_price")
	}
}

type City struct {
	City string `form:"city" validate:"notblank"`
}

type PropertyTypeFilter struct {
	Type models.PropertyType `form:"property_type" validate:"required,oneof=HOUSE APARTMENT OFFICE LOT FARM"`
}

type TransactionFilter struct {
	Type models.TransactionType `form:"transaction_type" validate:"required,oneof=SALE RENT"`
}

type DocumentSearch struct {
	Document string `form:"document" validate:"notblank"`
}
