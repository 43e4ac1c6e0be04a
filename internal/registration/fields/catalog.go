package fields

import (
	"fmt"

	"retreat/internal/registration/record"
)

// Field names referenced outside declarations.
const (
	FieldDateOfBirth   = "dateOfBirth"
	FieldTermsAccepted = "termsAccepted"
	FieldGSTRegistered = "gstRegistered"
	FieldGSTIN         = "gstin"
	FieldTDSPercent    = "tdsPercent"
	FieldNeedsPickup   = "needsPickup"
)

// Personal is the personal-details section.
var Personal = MustSet(SectionPersonal,
	FieldSpec{Name: "firstName", Label: "First name", Kind: KindText, Required: true},
	FieldSpec{Name: "lastName", Label: "Last name", Kind: KindText, Required: true},
	FieldSpec{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
	FieldSpec{Name: "phone", Label: "Phone", Kind: KindText, Required: true},
	FieldSpec{Name: FieldDateOfBirth, Label: "Date of birth", Kind: KindDate, Required: true},
	FieldSpec{Name: "gender", Label: "Gender", Kind: KindSelect, Required: true,
		Options: []string{"female", "male", "non_binary", "prefer_not_to_say"}},
	FieldSpec{Name: "address", Label: "Address", Kind: KindTextarea, Required: true},
	FieldSpec{Name: "city", Label: "City", Kind: KindText, Required: true},
	FieldSpec{Name: "country", Label: "Country", Kind: KindText, Required: true},
	FieldSpec{Name: "emergencyContactName", Label: "Emergency contact name", Kind: KindText, Required: true},
	FieldSpec{Name: "emergencyContactPhone", Label: "Emergency contact phone", Kind: KindText, Required: true},
	FieldSpec{Name: "dietaryRequirements", Label: "Dietary requirements", Kind: KindTextarea},
	FieldSpec{Name: "hasMedicalConditions", Label: "Any medical conditions?", Kind: KindBoolean},
	FieldSpec{Name: "medicalConditions", Label: "Medical conditions", Kind: KindTextarea, Required: true,
		DependsOn: When("hasMedicalConditions", record.Bool(true))},
	FieldSpec{Name: FieldTermsAccepted, Label: "I accept the terms and conditions", Kind: KindBoolean, Required: true},
)

// Payment is the invoicing section. Tax fields are only relevant for
// registrants who declare GST registration.
var Payment = MustSet(SectionPayment,
	FieldSpec{Name: "invoiceName", Label: "Name on invoice", Kind: KindText, Required: true},
	FieldSpec{Name: "invoiceEmail", Label: "Invoice email", Kind: KindEmail, Required: true},
	FieldSpec{Name: "address", Label: "Billing address", Kind: KindTextarea, Required: true},
	FieldSpec{Name: FieldGSTRegistered, Label: "GST registered", Kind: KindBoolean},
	FieldSpec{Name: FieldGSTIN, Label: "GSTIN", Kind: KindText, Required: true,
		DependsOn: When(FieldGSTRegistered, record.Bool(true))},
	FieldSpec{Name: FieldTDSPercent, Label: "TDS percent", Kind: KindSelect, Required: true,
		Options:   []string{"0", "1", "2", "10"},
		DependsOn: When(FieldGSTRegistered, record.Bool(true))},
)

// Travel is the arrival and departure section.
var Travel = MustSet(SectionTravel,
	FieldSpec{Name: "arrivalDate", Label: "Arrival date", Kind: KindDate, Required: true},
	FieldSpec{Name: "departureDate", Label: "Departure date", Kind: KindDate, Required: true},
	FieldSpec{Name: "travelMode", Label: "Travel mode", Kind: KindSelect, Required: true,
		Options: []string{"air", "rail", "road", "other"}},
	FieldSpec{Name: FieldNeedsPickup, Label: "Need a pickup?", Kind: KindBoolean},
	FieldSpec{Name: "pickupLocation", Label: "Pickup location", Kind: KindText, Required: true,
		DependsOn: When(FieldNeedsPickup, record.Bool(true))},
	FieldSpec{Name: "arrivalDetails", Label: "Flight or train details", Kind: KindTextarea},
)

// Catalog holds the field sets for every section.
type Catalog struct {
	sets map[Section]Set
}

// NewCatalog builds a catalog from already validated sets. Every section must
// be present exactly once.
func NewCatalog(sets ...Set) (Catalog, error) {
	c := Catalog{sets: make(map[Section]Set, len(sets))}
	for _, s := range sets {
		if _, dup := c.sets[s.section]; dup {
			return Catalog{}, &ConfigError{Section: s.section, Reason: "section declared twice"}
		}
		c.sets[s.section] = s
	}
	for _, sec := range Sections() {
		if _, ok := c.sets[sec]; !ok {
			return Catalog{}, &ConfigError{Section: sec, Reason: "section has no field set"}
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in Personal, Payment and Travel sets.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(Personal, Payment, Travel)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// Set returns the field set for section.
func (c Catalog) Set(section Section) (Set, bool) {
	s, ok := c.sets[section]
	return s, ok
}

// Sections lists every section in flow order.
func Sections() []Section {
	return []Section{SectionPersonal, SectionPayment, SectionTravel}
}
