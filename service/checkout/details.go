package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomerDetails is the delivery contact of a guest order.
type CustomerDetails struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,looseemail"`
	Phone      string `json:"phone" validate:"required,pkphone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

var (
	phonePattern = regexp.MustCompile(`^(\+92|0)?[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	whitespace   = regexp.MustCompile(`\s`)
)

// Cities offered by the checkout form. Other values are accepted.
var Cities = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi", "Faisalabad",
	"Multan", "Peshawar", "Quetta", "Sialkot", "Gujranwala",
	"Hyderabad", "Bahawalpur", "Sargodha", "Sukkur", "Larkana",
}

// fieldOrder fixes the order in which field errors are reported.
var fieldOrder = []string{"firstName", "lastName", "email", "phone", "address", "city"}

var messages = map[string]string{
	"firstName.required": "First name is required",
	"lastName.required":  "Last name is required",
	"email.required":     "Email is required",
	"email.looseemail":   "Please enter a valid email address",
	"phone.required":     "Phone number is required",
	"phone.pkphone":      "Please enter a valid Pakistani phone number",
	"address.required":   "Complete address is required",
	"city.required":      "Please select a city",
}

// NewValidator returns a validator that knows the checkout rules. The json
// tag names the fields in errors.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("pkphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(NormalizePhone(fl.Field().String()))
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// NormalizePhone removes all whitespace from a phone number.
func NormalizePhone(phone string) string {
	return whitespace.ReplaceAllString(phone, "")
}

// ValidationError maps json field names to user-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages lists the field messages in form order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range fieldOrder {
		if m, ok := e.Fields[f]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Normalize trims surrounding whitespace from every field.
func (d CustomerDetails) Normalize() CustomerDetails {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// Validate checks d with v and returns a *ValidationError listing every
// failing field.
func Validate(v *validator.Validate, d CustomerDetails) error {
	err := v.Struct(d.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
