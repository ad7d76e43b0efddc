package validator

import (
	"fmt"
	"strings"

	"checkin/dto"
	"checkin/errors"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New(playground.WithRequiredStructEnabled())

// ValidateCheckin checks the shape of a create request: photo urls must not be
// blank. Free-form fields are accepted at any length.
func ValidateCheckin(req *dto.CreateCheckinRequest) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(playground.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
		}
		return errors.NewAppError(errors.ErrCodeValidation, "invalid check-in: "+strings.Join(fields, ", "), err)
	}
	return nil
}
