package reviews

import (
	"github.com/rassdread/homecheff-backend/pkg/db/models"
)

// SubmitInput carries a buyer's review submission.
type SubmitInput struct {
	Token   string
	Rating  int
	Comment string
}

// List is one page of a product's submitted reviews.
type List struct {
	Items      []models.Review `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
