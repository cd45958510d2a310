package dto

import (
	"net/http"
	"strings"

	"todos/internal/domains/todo/model"
	"todos/shared/constant"
	"todos/shared/failure"
	"todos/shared/validator"
)

type CreateTodoRequest struct {
	Title string `json:"title" validate:"notblank"`
}

// FromPayload projects the decoded request body onto the typed request.
// A title of any non-string JSON type counts as absent.
func (c *CreateTodoRequest) FromPayload(payload map[string]any) error {
	title, _ := payload[model.FieldTitle].(string)
	c.Title = strings.TrimSpace(title)

	return validator.ValidateStruct(c)
}

func (c *CreateTodoRequest) ToModel() model.Todo {
	return model.Todo{
		Title: c.Title,
		Done:  false,
	}
}

type UpdateTodoRequest struct {
	Title *string `json:"title" validate:"omitnil,notempty"`
	Done  *bool   `json:"done"  validate:"omitnil"`
}

// FromPayload projects the recognized patch fields onto the typed request.
// Absent fields stay nil, unrecognized fields are ignored and a present done
// must be a boolean literal.
func (u *UpdateTodoRequest) FromPayload(payload map[string]any) error {
	if raw, ok := payload[model.FieldTitle]; ok {
		title, _ := raw.(string)
		title = strings.TrimSpace(title)
		u.Title = &title

		if err := validator.ValidateStruct(u); err != nil {
			return err
		}
	}

	if raw, ok := payload[model.FieldDone]; ok {
		done, isBool := raw.(bool)
		if !isBool {
			return failure.UnprocessableEntity("done must be boolean") //nolint:wrapcheck
		}

		u.Done = &done
	}

	return nil
}

// Fields lists the patch fields that are present, keyed by entity field name.
func (u *UpdateTodoRequest) Fields() map[string]any {
	fields := make(map[string]any)

	if u.Title != nil {
		fields[model.FieldTitle] = *u.Title
	}

	if u.Done != nil {
		fields[model.FieldDone] = *u.Done
	}

	return fields
}

type ListTodosFilter struct {
	Done *bool
}

// FromRequest reads the optional done query parameter. When present the
// filter value is true only for the literal string "true"; any other value,
// including "false", filters on done == false.
func (f *ListTodosFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	if !query.Has(constant.RequestParamDone) {
		return
	}

	done := query.Get(constant.RequestParamDone) == "true"
	f.Done = &done
}

type TodoResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (r *TodoResponse) FromModel(mod model.Todo) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Done = mod.Done
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
	Count int            `json:"count"`
}

func (r *ListTodosResponse) FromModels(models []model.Todo) {
	r.Items = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Count = len(models)
}
