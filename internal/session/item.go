package session

// LineItem is one row of the working document. Every field is optional:
// nil numeric fields and empty strings render as empty editable cells.
type LineItem struct {
	Reference string   `json:"reference"`
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// LineTotal returns quantity times unit price, treating unset fields as zero.
func (li LineItem) LineTotal() float64 {
	if li.Quantity == nil || li.UnitPrice == nil {
		return 0
	}
	return *li.Quantity * *li.UnitPrice
}

// Field identifies an editable column of a line item.
type Field string

const (
	FieldReference Field = "reference"
	FieldName      Field = "name"
	FieldQuantity  Field = "quantity"
	FieldUnitPrice Field = "unitPrice"
)

var validFields = map[Field]bool{
	FieldReference: true,
	FieldName:      true,
	FieldQuantity:  true,
	FieldUnitPrice: true,
}

// IsValid returns true if the field names an editable line item column.
func (f Field) IsValid() bool {
	return validFields[f]
}
