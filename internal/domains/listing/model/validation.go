package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	TitleMaxLength       = 50
	DescriptionMaxLength = 1000
	AddressMaxLength     = 200
)

var notBlank = regexp.MustCompile(`\S`)

// fieldOrder giữ thứ tự failures ổn định (validation.Errors là map)
var fieldOrder = []string{"title", "price", "description", "address"}

// ValidationFailure is one violated rule, keyed by the JSON field name.
type ValidationFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate áp dụng rules cho create/update payload
func (in ListingInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("Title is required."),
			validation.Match(notBlank).Error("Title is required."),
			validation.RuneLength(0, TitleMaxLength).Error("Title must be 50 characters or less."),
		),
		validation.Field(&in.Price,
			validation.By(positivePrice),
		),
		validation.Field(&in.Description,
			validation.RuneLength(0, DescriptionMaxLength).Error("Description must be 1000 characters or less."),
		),
		validation.Field(&in.Address,
			validation.RuneLength(0, AddressMaxLength).Error("Address must be 200 characters or less."),
		),
	)
}

func positivePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || !price.IsPositive() {
		return errors.New("Price must be greater than zero.")
	}
	return nil
}

// ValidateListing trả về danh sách field/message vi phạm; slice rỗng nghĩa là hợp lệ.
// Mỗi field có tối đa một failure.
func ValidateListing(in ListingInput) []ValidationFailure {
	failures := []ValidationFailure{}

	err := in.Validate()
	if err == nil {
		return failures
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return append(failures, ValidationFailure{Message: err.Error()})
	}

	for _, field := range fieldOrder {
		if fieldErr, ok := fieldErrs[field]; ok && fieldErr != nil {
			failures = append(failures, ValidationFailure{Field: field, Message: fieldErr.Error()})
		}
	}
	return failures
}
