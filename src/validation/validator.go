package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"flux-backend/src/models"

	"github.com/go-playground/validator/v10"
)

// PhonePattern allows digits, '+', '-', parentheses and spaces, 6 to 20 characters.
var PhonePattern = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)

// Errors carries every field violation found in one payload.
type Errors struct {
	Messages []string
}

func (e *Errors) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Validator wraps the go-playground validator with the intake rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so messages match what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(validateSkills, models.ApplicationInput{})

	return &Validator{validate: v}
}

func validateSkills(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.ApplicationInput)
	reportSkills(sl, in.SoftSkills, "softSkills", "SoftSkills")
	reportSkills(sl, in.HardSkills, "hardSkills", "HardSkills")
}

func reportSkills(sl validator.StructLevel, s models.SkillsInput, jsonName, structName string) {
	if s.Valid() {
		return
	}
	tag, param := "skills", ""
	if s.BadIndex >= 0 {
		param = strconv.Itoa(s.BadIndex)
	}
	if s.EmptyElement {
		tag = "skills_empty"
	}
	sl.ReportError(s, jsonName, structName, tag, param)
}

// Struct validates s against its tags and returns *Errors listing every
// violation, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{Messages: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		out.Messages = append(out.Messages, Message(fe))
	}
	return out
}

// Message renders one field error in the wording the form client shows.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "phone":
		return fmt.Sprintf("%q with value %q fails to match the required pattern: /%s/", field, fmt.Sprint(fe.Value()), PhonePattern.String())
	case "skills":
		if fe.Param() != "" {
			return fmt.Sprintf("%q must be a string", field+"["+fe.Param()+"]")
		}
		return fmt.Sprintf("%q must be one of [array, string]", field)
	case "skills_empty":
		return fmt.Sprintf("%q is not allowed to be empty", field+"["+fe.Param()+"]")
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// TypeMismatch is the message for a JSON value of the wrong type.
func TypeMismatch(field, expected string) string {
	return fmt.Sprintf("%q must be a %s", field, expected)
}
