package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
}

// ValidationError carries every field violation of a payload, not just the
// first one, so the whole set can be flashed back to the user at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ListingPayload is the form body of listing create/update. Price is a
// pointer so that a missing or unparsable field is a "required" violation
// rather than a silent zero.
type ListingPayload struct {
	Title       string   `form:"title" validate:"required,min=3,max=100"`
	Description string   `form:"description" validate:"required,min=10,max=2000"`
	Price       *float64 `form:"price" validate:"required,min=0,max=1000000"`
	Location    string   `form:"location" validate:"required,min=2,max=100"`
	Country     string   `form:"country" validate:"required,min=2,max=100"`
	Image       string   `form:"image" validate:"omitempty"`
}

type ReviewPayload struct {
	Comment string `form:"comment" validate:"required,min=3,max=500"`
	Rating  int    `form:"rating" validate:"required,min=1,max=5"`
}

type SignupPayload struct {
	Username string `form:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6,max=50"`
}

type LoginPayload struct {
	Username string `form:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `form:"password" validate:"required"`
}

// ValidateListing trims the free-text fields and checks the listing schema.
func ValidateListing(p *ListingPayload) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	p.Country = strings.TrimSpace(p.Country)
	return check(p)
}

func ValidateReview(p *ReviewPayload) error {
	p.Comment = strings.TrimSpace(p.Comment)
	return check(p)
}

// ValidateSignup lower-cases the email before checking, matching what the
// persistence layer stores.
func ValidateSignup(p *SignupPayload) error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return check(p)
}

func ValidateLogin(p *LoginPayload) error {
	p.Username = strings.TrimSpace(p.Username)
	return check(p)
}

func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Messages = append(out.Messages, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
