package extract

import (
	"errors"
	"fmt"
)

// ErrMalformedXML marks a NewsML document that could not be parsed at all.
var ErrMalformedXML = errors.New("malformed NewsML document")

// MissingFieldError reports a mandatory field absent from a source document.
// Missing optional fields (date, category, author) never produce it.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field: %s", e.Field)
}

// IsMissingField reports whether err is a MissingFieldError for field.
func IsMissingField(err error, field string) bool {
	var mfe *MissingFieldError
	return errors.As(err, &mfe) && mfe.Field == field
}
