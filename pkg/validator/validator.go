package validator

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// Fields holds raw request values keyed by field name. Values are strings,
// *multipart.FileHeader for uploads, or nil when the field was not sent.
type Fields map[string]interface{}

// Rules maps a field name to the ordered checks applied to it.
type Rules map[string][]Rule

// ValidationError carries every failing field with its messages.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Errors[field]
	return ok
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

// Validate runs rules against fields. The first failing rule of a field is
// reported and the remaining fields are still checked. A *ValidationError is
// returned on rule failures; any other error comes from a lookup rule.
func (cv *CustomValidator) Validate(ctx context.Context, fields Fields, rules Rules) error {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make(map[string][]string)
	for _, name := range names {
		msg, err := cv.validateField(ctx, name, fields, rules[name])
		if err != nil {
			return err
		}
		if msg != "" {
			errs[name] = append(errs[name], msg)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (cv *CustomValidator) validateField(ctx context.Context, name string, fields Fields, rules []Rule) (string, error) {
	value := fields[name]
	if !present(value) {
		for _, rule := range rules {
			if rule.Kind == KindRequired {
				return rule.message(name, "The %s field is required."), nil
			}
		}
		return "", nil
	}

	for _, rule := range rules {
		msg, err := cv.check(ctx, name, value, fields, rule)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return msg, nil
		}
	}
	return "", nil
}

func (cv *CustomValidator) check(ctx context.Context, name string, value interface{}, fields Fields, rule Rule) (string, error) {
	if rule.Kind == KindImage {
		return cv.checkImage(name, value, rule)
	}

	s, isString := value.(string)
	if !isString {
		switch rule.Kind {
		case KindRequired, KindNullable:
			return "", nil
		default:
			return rule.message(name, "The %s must be a string."), nil
		}
	}

	switch rule.Kind {
	case KindRequired, KindNullable, KindString:
		return "", nil

	case KindEmail:
		if cv.validator.Var(s, "email") != nil {
			return rule.message(name, "The %s must be a valid email address."), nil
		}

	case KindNumeric:
		if cv.validator.Var(s, "numeric") != nil {
			return rule.message(name, "The %s must be a number."), nil
		}

	case KindBetween:
		n := utf8.RuneCountInString(s)
		if n < rule.Min || n > rule.Max {
			return rule.message(name, fmt.Sprintf("The %%s must be between %d and %d characters.", rule.Min, rule.Max)), nil
		}

	case KindMin:
		if utf8.RuneCountInString(s) < rule.Min {
			return rule.message(name, fmt.Sprintf("The %%s must be at least %d characters.", rule.Min)), nil
		}

	case KindMax:
		if utf8.RuneCountInString(s) > rule.Max {
			return rule.message(name, fmt.Sprintf("The %%s may not be greater than %d characters.", rule.Max)), nil
		}

	case KindDigits:
		if cv.validator.Var(s, "number") != nil || len(s) != rule.Min {
			return rule.message(name, fmt.Sprintf("The %%s must be %d digits.", rule.Min)), nil
		}

	case KindDigitsBetween:
		if cv.validator.Var(s, "number") != nil || len(s) < rule.Min || len(s) > rule.Max {
			return rule.message(name, fmt.Sprintf("The %%s must be between %d and %d digits.", rule.Min, rule.Max)), nil
		}

	case KindOneOf:
		for _, option := range rule.Options {
			if s == option {
				return "", nil
			}
		}
		return rule.message(name, "The selected %s is invalid."), nil

	case KindSame:
		other, _ := fields[rule.Field].(string)
		if s != other {
			return rule.message(name, fmt.Sprintf("The %%s and %s must match.", rule.Field)), nil
		}

	case KindUnique:
		taken, err := rule.Check(ctx, s)
		if err != nil {
			return "", fmt.Errorf("unique check on %s: %w", name, err)
		}
		if taken {
			return rule.message(name, "The %s has already been taken."), nil
		}

	case KindCustom:
		ok, err := rule.Check(ctx, s)
		if err != nil {
			return "", fmt.Errorf("check on %s: %w", name, err)
		}
		if !ok {
			return rule.message(name, "The %s is invalid."), nil
		}
	}

	return "", nil
}

func (cv *CustomValidator) checkImage(name string, value interface{}, rule Rule) (string, error) {
	header, ok := value.(*multipart.FileHeader)
	if !ok {
		return rule.message(name, "The %s must be an image."), nil
	}

	if rule.Max > 0 && header.Size > int64(rule.Max)*1024 {
		return rule.message(name, fmt.Sprintf("The %%s may not be greater than %d kilobytes.", rule.Max)), nil
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", name, err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect upload %s: %w", name, err)
	}

	for _, ext := range rule.Options {
		if detected.Is(imageMIME(ext)) {
			return "", nil
		}
	}
	return rule.message(name, fmt.Sprintf("The %%s must be a file of type: %s.", strings.Join(rule.Options, ", "))), nil
}

func imageMIME(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/" + ext
	}
}

func present(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case *multipart.FileHeader:
		return v != nil
	default:
		return true
	}
}
