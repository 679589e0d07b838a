package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"github.com/meghashyamc/ghreport/logger"
)

var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrInvalidSHA   = errors.New("invalid sha")
	ErrInvalidSpan  = errors.New("invalid match span")
)

type Validator struct {
	validator                *validator.Validate
	logger                   logger.Logger
	tagValidationDetailsOnce sync.Once
	tagValidationDetailsMap  map[string]tagValidationDetails
}

type tagValidationDetails struct {
	validatorFunc validator.Func
	err           error
}

func New(logger logger.Logger) (*Validator, error) {
	validator := &Validator{validator: validator.New(), logger: logger}
	validator.validator.RegisterTagNameFunc(useJSONFieldNames)
	if err := validator.registerCustomValidatorsForTags(); err != nil {
		return nil, err
	}

	return validator, nil
}

func (v *Validator) Validate(i any) error {

	if err := v.validator.Struct(i); err != nil {
		v.logger.Debug("validation failed", "err", err.Error())
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {

			tagValidationDetails, ok := v.getTagValidationDetails()[validationErrs[0].Tag()]
			if ok {
				return fmt.Errorf("%w in field '%s'", tagValidationDetails.err, validationErrs[0].Namespace())
			}

			switch validationErrs[0].Tag() {
			case "required":
				return fmt.Errorf("missing required field '%s'", validationErrs[0].Namespace())

			case "min", "max":
				return fmt.Errorf("value or length of field '%s' is not in the expected range", validationErrs[0].Namespace())

			}
		}
		return err
	}
	return nil
}

func (v *Validator) getTagValidationDetails() map[string]tagValidationDetails {
	v.tagValidationDetailsOnce.Do(func() {
		v.tagValidationDetailsMap = map[string]tagValidationDetails{
			"valid_query": {validatorFunc: v.isValidQuery, err: ErrInvalidQuery},
			"valid_sha":   {validatorFunc: v.isValidSHA, err: ErrInvalidSHA},
			"valid_span":  {validatorFunc: v.isValidSpan, err: ErrInvalidSpan},
		}
	})
	return v.tagValidationDetailsMap
}

func (v *Validator) registerCustomValidatorsForTags() error {

	tagValidationDetailsMap := v.getTagValidationDetails()

	for tag, tagValidationDetails := range tagValidationDetailsMap {
		if err := v.validator.RegisterValidation(tag, tagValidationDetails.validatorFunc); err != nil {
			v.logger.Error("failed to register custom validator function", "tag", tag, "err", err.Error())
			return err
		}
	}
	return nil
}

func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func (v *Validator) isValidQuery(fl validator.FieldLevel) bool {
	query := fl.Field().String()
	if len(query) == 0 {
		return false
	}
	if strings.TrimSpace(query) == "" {
		v.logger.Warn("query is empty", "query", query)
		return false
	}

	return true
}

// Content hashes are hex encoded; both sha1 and sha256 object ids are accepted.
func (v *Validator) isValidSHA(fl validator.FieldLevel) bool {
	sha := fl.Field().String()
	if len(sha) == 0 {
		return false
	}

	for _, char := range sha {
		isHexDigit := (char >= '0' && char <= '9') || (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')
		if !isHexDigit {
			v.logger.Warn("sha is not hex encoded", "sha", sha)
			return false
		}
	}

	return true
}

// A span is a [begin, end] pair of non-negative offsets. Offsets past the end of
// the fragment or inverted pairs are tolerated here and clamped when rendering.
func (v *Validator) isValidSpan(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice && field.Kind() != reflect.Array {
		return false
	}

	if field.Len() != 2 {
		v.logger.Warn("match span must have exactly two offsets", "len", field.Len())
		return false
	}

	for i := 0; i < field.Len(); i++ {
		if field.Index(i).Int() < 0 {
			v.logger.Warn("match span has a negative offset", "offset", field.Index(i).Int())
			return false
		}
	}

	return true
}
