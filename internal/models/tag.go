package models

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"required,max=100,slug"`
}

func (t *Tag) Validate() error {
	return validate.Struct(t)
}
