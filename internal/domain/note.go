package domain

type Note struct {
	NoteID      string `json:"id" dynamodbav:"note_id"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"desc" dynamodbav:"desc"`
	IsFavourite bool   `json:"is_fav" dynamodbav:"is_fav"`
	Tag         string `json:"tag" dynamodbav:"tag"`
	Audit
}

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"desc"`
	IsFavourite bool   `json:"is_fav"`
	Tag         string `json:"tag"`
}

type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"desc"`
	IsFavourite *bool   `json:"is_fav"`
	Tag         *string `json:"tag"`
}
