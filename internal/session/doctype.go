package session

import "fmt"

// DocumentType is the kind of document being authored. The set is closed
// and the declaration order is the presentation order; the first entry is
// the default selection for a new session.
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "Invoice"
	DocumentTypeQuote         DocumentType = "Quote"
	DocumentTypePurchaseOrder DocumentType = "PurchaseOrder"
	DocumentTypeDeliveryNote  DocumentType = "DeliveryNote"
)

var documentTypes = []DocumentType{
	DocumentTypeInvoice,
	DocumentTypeQuote,
	DocumentTypePurchaseOrder,
	DocumentTypeDeliveryNote,
}

// DocumentTypes returns the full enumeration in presentation order.
func DocumentTypes() []DocumentType {
	return append([]DocumentType{}, documentTypes...)
}

// DefaultDocumentType returns the default selection for a new session.
func DefaultDocumentType() DocumentType {
	return documentTypes[0]
}

// ParseDocumentType resolves a string to a member of the enumeration.
func ParseDocumentType(s string) (DocumentType, error) {
	d := DocumentType(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: unknown document type %q", ErrInvalidArgument, s)
	}
	return d, nil
}

// IsValid returns true if the value is a member of the enumeration.
func (d DocumentType) IsValid() bool {
	for _, t := range documentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// String returns the string representation of the document type.
func (d DocumentType) String() string {
	return string(d)
}
