package sheet

import "github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"

type Ref struct {
	SheetID string `json:"sheetId"`
	Range   string `json:"range"`
}

type GetRequest struct {
	Sheet *Ref `json:"sheet"`
}

func (r *GetRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Sheet == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "sheet",
			Message: "sheet is required",
		})
		return errs
	}
	errs.Required("sheet.sheetId", r.Sheet.SheetID)
	errs.Required("sheet.range", r.Sheet.Range)
	return errs.Err()
}

type AppendRequest struct {
	SheetID  string `json:"sheetId"`
	Range    string `json:"range"`
	NewRow   Cells  `json:"newRow"`
	Nickname string `json:"nickname,omitempty"`
}

func (r *AppendRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("sheetId", r.SheetID)
	errs.Required("range", r.Range)
	if r.NewRow == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "newRow",
			Message: "newRow is required",
		})
	}
	return errs.Err()
}

type AppendResponse struct {
	UpdatedRows int64 `json:"updatedRows"`
}
