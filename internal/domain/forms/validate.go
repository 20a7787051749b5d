package forms

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/floww/internal/domain/model"
)

// Directory resolves the ids a form refers to.
type Directory interface {
	Manager(ctx context.Context, id string) (model.Manager, error)
	Employee(ctx context.Context, id string) (model.Employee, error)
	Team(ctx context.Context, id string) (model.Team, error)
}

// messages maps field and failed rule to the text shown next to the input.
var messages = map[string]map[string]string{
	"teamId":      {"required": "Team ID is required"},
	"teamName":    {"required": "Team name is required"},
	"manager":     {"required": "Manager is required"},
	"employees":   {"min": "At least one employee is required"},
	"projectName": {"required": "Project name is required"},
	"description": {"required": "Project description is required"},
	"deadline":    {"required": "Deadline is required", "datetime": "Deadline must be a date"},
	"team":        {"required": "Team is required"},
}

// Validator checks form schemas and the references they carry.
type Validator struct {
	v   *validator.Validate
	dir Directory
}

// NewValidator builds a Validator resolving references through dir.
func NewValidator(dir Directory) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v, dir: dir}
}

// TeamDetails validates wizard step one.
func (v *Validator) TeamDetails(ctx context.Context, t TeamDetails) error {
	fields := v.schema(t)
	v.teamRefs(ctx, t, fields)
	return result(fields)
}

// ProjectDetails validates wizard step two.
func (v *Validator) ProjectDetails(_ context.Context, p ProjectDetails) error {
	return result(v.schema(p))
}

// TeamProject validates a whole wizard payload at once.
func (v *Validator) TeamProject(ctx context.Context, tp TeamProject) error {
	fields := v.schema(tp)
	v.teamRefs(ctx, tp.TeamDetails, fields)
	return result(fields)
}

// Assignment validates the assign-project form.
func (v *Validator) Assignment(ctx context.Context, a Assignment) error {
	fields := v.schema(a)
	if _, failed := fields["team"]; !failed {
		if _, err := v.dir.Team(ctx, a.Team); err != nil {
			fields["team"] = "Unknown team"
		}
	}
	return result(fields)
}

func (v *Validator) schema(s any) FieldErrors {
	fields := FieldErrors{}
	err := v.v.Struct(s)
	if err == nil {
		return fields
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		msg, ok := messages[name][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		fields[name] = msg
	}
	return fields
}

func (v *Validator) teamRefs(ctx context.Context, t TeamDetails, fields FieldErrors) {
	if _, failed := fields["manager"]; !failed {
		if _, err := v.dir.Manager(ctx, t.Manager); err != nil {
			fields["manager"] = "Unknown manager"
		}
	}
	if _, failed := fields["employees"]; !failed {
		for _, id := range t.Employees {
			if _, err := v.dir.Employee(ctx, id); err != nil {
				fields["employees"] = "Unknown employee"
				break
			}
		}
	}
}

func result(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Fields extracts the per-field messages from err, or nil.
func Fields(err error) FieldErrors {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
