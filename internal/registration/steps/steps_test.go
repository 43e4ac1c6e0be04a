package steps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
	"retreat/internal/registration/section"
)

type StepsSuite struct {
	suite.Suite
	personal record.Record
	payment  record.Record
	travel   record.Record
}

func TestStepsSuite(t *testing.T) {
	suite.Run(t, new(StepsSuite))
}

func (s *StepsSuite) SetupTest() {
	s.personal = record.New(map[string]record.Value{
		"firstName":             record.String("Asha"),
		"lastName":              record.String("Rao"),
		"email":                 record.String("asha@example.com"),
		"phone":                 record.String("+91 98450 00000"),
		"dateOfBirth":           record.Date(time.Date(1990, 1, 31, 0, 0, 0, 0, time.UTC)),
		"gender":                record.String("female"),
		"address":               record.String("12 Lake Road"),
		"city":                  record.String("Bengaluru"),
		"country":               record.String("India"),
		"emergencyContactName":  record.String("Ravi Rao"),
		"emergencyContactPhone": record.String("+91 98450 11111"),
		"termsAccepted":         record.Bool(true),
	})
	s.payment = record.New(map[string]record.Value{
		"invoiceName":   record.String("Asha Rao"),
		"invoiceEmail":  record.String("asha@example.com"),
		"address":       record.String("12 Lake Road"),
		"gstRegistered": record.Bool(false),
	})
	s.travel = record.New(map[string]record.Value{
		"arrivalDate":   record.Date(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)),
		"departureDate": record.Date(time.Date(2026, 11, 9, 0, 0, 0, 0, time.UTC)),
		"travelMode":    record.String("rail"),
	})
}

func (s *StepsSuite) sections(personal, payment, travel record.Record) (*section.State, *section.State, *section.State) {
	return section.New(fields.Personal, personal), section.New(fields.Payment, payment), section.New(fields.Travel, travel)
}

func input(paid bool, submitted bool, secs ...*section.State) Input {
	views := make([]SectionView, 0, len(secs))
	for _, sec := range secs {
		views = append(views, sec)
	}
	return Input{Event: EventConfig{RequiresPayment: paid}, Sections: views, Submitted: submitted}
}

type flags struct {
	id        ID
	completed bool
	current   bool
}

func (s *StepsSuite) assertFlags(got []Step, want ...flags) {
	s.Require().Len(got, len(want))
	for i, w := range want {
		s.Equal(w.id, got[i].ID, "position %d", i+1)
		s.Equal(i+1, got[i].Position)
		s.Equal(w.completed, got[i].IsCompleted, "%s completed", w.id)
		s.Equal(w.current, got[i].IsCurrent, "%s current", w.id)
	}
}

func (s *StepsSuite) TestPaidEventWithEmptyPayment() {
	p, pay, tr := s.sections(s.personal, record.New(nil), record.New(nil))
	got := Compute(input(true, false, p, pay, tr))

	s.assertFlags(got,
		flags{IDPersonal, true, false},
		flags{IDPayment, false, true},
		flags{IDTravel, false, false},
		flags{IDComplete, false, false},
	)
	s.Equal("Payment", got[1].Title)
	s.Equal([]string{"invoiceName", "invoiceEmail", "address"}, got[1].MissingRequired)
}

func (s *StepsSuite) TestUnpaidEventOmitsPayment() {
	p, pay, tr := s.sections(s.personal, record.New(nil), s.travel)
	got := Compute(input(false, false, p, pay, tr))

	for _, st := range got {
		s.NotEqual("Payment", st.Title)
		s.NotEqual(IDPayment, st.ID)
	}
	s.assertFlags(got,
		flags{IDPersonal, true, false},
		flags{IDTravel, true, false},
		flags{IDComplete, false, true},
	)
}

func (s *StepsSuite) TestPersonalNeedsTermsAccepted() {
	declined := s.personal.With("termsAccepted", record.Bool(false))
	p, pay, tr := s.sections(declined, s.payment, s.travel)
	got := Compute(input(true, false, p, pay, tr))

	s.False(got[0].IsCompleted)
	s.True(got[0].IsCurrent)
	s.Equal([]string{"termsAccepted"}, got[0].MissingRequired)

	unanswered := s.personal.With("termsAccepted", record.Unset())
	p2, _, _ := s.sections(unanswered, s.payment, s.travel)
	got = Compute(input(true, false, p2, pay, tr))
	s.Equal([]string{"termsAccepted"}, got[0].MissingRequired)
}

func (s *StepsSuite) TestEditingSectionIsForcedCurrent() {
	p, pay, tr := s.sections(s.personal, record.New(nil), record.New(nil))
	p.BeginEdit()
	got := Compute(input(true, false, p, pay, tr))

	s.assertFlags(got,
		flags{IDPersonal, true, true},
		flags{IDPayment, false, false},
		flags{IDTravel, false, false},
		flags{IDComplete, false, false},
	)
}

func (s *StepsSuite) TestEditingLaterSectionSuppressesEarlierIncomplete() {
	p, pay, tr := s.sections(record.New(nil), s.payment, s.travel)
	tr.BeginEdit()
	got := Compute(input(true, false, p, pay, tr))

	current, ok := Current(got)
	s.Require().True(ok)
	s.Equal(IDTravel, current.ID)
	s.False(got[0].IsCurrent)
}

func (s *StepsSuite) TestCompletionReadsCommittedRecord() {
	p, pay, tr := s.sections(s.personal, s.payment, s.travel)
	pay.BeginEdit()
	s.Require().NoError(pay.Apply("invoiceName", record.String(""), nil))

	got := Compute(input(true, false, p, pay, tr))
	s.True(got[1].IsCompleted, "uncommitted draft does not affect completion")
	s.True(got[1].IsCurrent)
}

func (s *StepsSuite) TestLateSurfacedFieldsGatePayment() {
	gst := s.payment.With("gstRegistered", record.Bool(true))
	p, pay, tr := s.sections(s.personal, gst, s.travel)
	got := Compute(input(true, false, p, pay, tr))

	s.False(got[1].IsCompleted)
	s.Equal([]string{"gstin", "tdsPercent"}, got[1].MissingRequired)
}

func (s *StepsSuite) TestSubmittedAndComplete() {
	p, pay, tr := s.sections(s.personal, s.payment, s.travel)
	got := Compute(input(true, true, p, pay, tr))
	s.assertFlags(got,
		flags{IDPersonal, true, false},
		flags{IDPayment, true, false},
		flags{IDTravel, true, false},
		flags{IDComplete, true, false},
	)
	_, ok := Current(got)
	s.False(ok)

	s.Run("first incomplete is limited to the requested steps", func() {
		p, pay, tr := s.sections(s.personal, record.New(nil), record.New(nil))
		got := Compute(input(true, false, p, pay, tr))

		st, ok := FirstIncomplete(got, IDPersonal, IDPayment)
		s.Require().True(ok)
		s.Equal(IDPayment, st.ID)

		_, ok = FirstIncomplete(got, IDPersonal)
		s.False(ok)

		found, ok := Find(got, IDTravel)
		s.True(ok)
		s.Equal(3, found.Position)
	})
}
