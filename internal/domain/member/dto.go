package member

import "github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"

type SignupRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note,omitempty"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)

	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 10 digits starting with 0",
		})
	}

	return errs.Err()
}

// LineUser is the identity LINE hands the mini-app.
type LineUser struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}
