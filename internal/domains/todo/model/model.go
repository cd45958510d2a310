package model

const (
	EntityName = "todo"

	FieldID    = "id"
	FieldTitle = "title"
	FieldDone  = "done"
)

type Todo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
