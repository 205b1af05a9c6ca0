package notification

import "github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"

type PushRequest struct {
	Message  string   `json:"message"`
	Title    string   `json:"title,omitempty"`
	Audience Audience `json:"audience,omitempty"`
	// Token is sent by older clients to ask for the admin application. Its
	// value is never forwarded.
	Token string `json:"token,omitempty"`
}

func (r *PushRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("message", r.Message)
	if r.Audience != AudienceStaff && r.Audience != AudienceAdmin {
		errs = append(errs, validator.ValidationError{
			Field:   "audience",
			Message: "audience must be empty or admin",
		})
	}
	return errs.Err()
}

func (r PushRequest) ToMessage() Message {
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}
	audience := r.Audience
	if r.Token != "" {
		audience = AudienceAdmin
	}
	return Message{Title: title, Text: r.Message, Audience: audience}
}
