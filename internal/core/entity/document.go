package entity

import (
	"context"
	"time"

	"tradebook/internal/core/apperror"
)

// DocType identifies which document kind caused a movement.
type DocType string

const (
	DocTypeSale   DocType = "sale"
	DocTypeIncome DocType = "income"
)

// Document is the base type for business transactions (Sale, Income).
// A document owns its register movements: they are written when the
// document is created and removed when it is rolled back. A reader never
// observes a document without its movements or vice versa.
type Document struct {
	BaseDocument

	// Date is the business date of the document
	Date time.Time `db:"doc_date" json:"date"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(date time.Time) Document {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         date,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
