package model

type Sort struct {
	Property  string `json:"property" validate:"required"`
	Direction string `json:"direction" validate:"required,sort_direction"`
}

// PageQuery describes a list request. Absent fields mean "server default":
// Page and Size are pointers so that zero can be distinguished from unset,
// and Filters is transmitted field by field, skipping undefined values.
type PageQuery[F any] struct {
	Search  string `validate:"omitempty"`
	Page    *int   `validate:"omitempty,gte=0"`
	Size    *int   `validate:"omitempty,gt=0"`
	Sorts   []Sort `validate:"omitempty,dive"`
	Filters *F
}

type PageInfo struct {
	Size          int `json:"size"`
	Number        int `json:"number"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

type Page[T any] struct {
	Content []T      `json:"content"`
	Page    PageInfo `json:"page"`
}

// ExportScheme projects exported rows onto Fields, positionally paired with
// the column Titles the server should emit.
type ExportScheme struct {
	Fields []string `validate:"required,min=1"`
	Titles []string `validate:"required,min=1"`
}

func IntPtr(v int) *int {
	return &v
}
