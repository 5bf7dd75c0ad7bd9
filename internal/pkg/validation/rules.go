package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// PhonePattern accepts international and local numbers with optional
	// separators, e.g. "+27 11 123 4567" or "(011) 123-4567".
	PhonePattern = `^\+?[0-9 ()\-]{7,20}$`

	// PhoneMinDigits is the minimum number of digits a phone number must contain
	PhoneMinDigits = 7
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone *regexp.Regexp
}{
	Phone: regexp.MustCompile(PhonePattern),
}

// IsPhone reports whether s looks like a phone number
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !CompiledPatterns.Phone.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= PhoneMinDigits
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

// jsonTagName reports fields by their JSON name in validation errors
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)
	return v.RegisterValidation("phone", validatePhone)
}

// RegisterCustomValidations installs the custom rules on gin's binding validator
func RegisterCustomValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return Register(v)
	}
	return nil
}
