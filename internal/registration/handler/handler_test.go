package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/handler/mocks"
	"retreat/internal/registration/orchestrator"
	"retreat/internal/registration/record"
	"retreat/internal/registration/section"
	"retreat/internal/registration/service"
	"retreat/internal/registration/steps"
	"retreat/internal/registration/store"
	"retreat/pkg/domain"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	id      domain.RegistrationID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.id = domain.NewRegistrationID()
}

func (s *HandlerSuite) path(suffix string) string {
	return "/registrations/" + s.id.String() + suffix
}

func (s *HandlerSuite) view() *orchestrator.View {
	return &orchestrator.View{
		RegistrationID: s.id,
		Steps:          steps.Compute(steps.Input{Event: steps.EventConfig{RequiresPayment: true}}),
		Sections:       map[fields.Section]orchestrator.SectionView{},
	}
}

// =============================================================================
// Create / Get
// =============================================================================

func (s *HandlerSuite) TestCreate() {
	s.Run("creates a registration", func() {
		s.service.EXPECT().
			Create(gomock.Any(), steps.EventConfig{Name: "Winter Silence Retreat", RequiresPayment: true}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ steps.EventConfig, raw service.RawRegistrant) (*orchestrator.View, error) {
				s.Equal("Asha", raw.Personal["firstName"])
				return s.view(), nil
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations", map[string]any{
			"event":      map[string]any{"name": " Winter Silence Retreat ", "requires_payment": true},
			"registrant": map[string]any{"personal": map[string]string{"firstName": "Asha"}},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "registration_id", s.id.String())
	})

	s.Run("event name is required", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations", map[string]any{
			"event": map[string]any{"name": "  "},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/registrations", `{"event":`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("coercion errors are bad requests", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "dateOfBirth: expected a date as YYYY-MM-DD"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/registrations", map[string]any{
			"event": map[string]any{"name": "Open Day"},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestGet() {
	s.Run("returns the view", func() {
		s.service.EXPECT().Get(gomock.Any(), s.id).Return(s.view(), nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, s.path("")))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/registrations/not-a-uuid"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("not found", func() {
		s.service.EXPECT().Get(gomock.Any(), s.id).Return(nil, dErrors.New(dErrors.CodeNotFound, "registration not found"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, s.path("")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("internal errors hide the description", func() {
		s.service.EXPECT().Get(gomock.Any(), s.id).Return(nil, dErrors.New(dErrors.CodeInternal, "lock poisoned"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, s.path("")))
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		body := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("internal_error", body["error"])
		s.NotContains(body, "error_description")
	})
}

// =============================================================================
// Sections
// =============================================================================

func (s *HandlerSuite) TestFieldChange() {
	s.Run("passes the raw value through", func() {
		s.service.EXPECT().ApplyFieldChange(gomock.Any(), s.id, fields.SectionPayment, "gstRegistered", "true").Return(s.view(), nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/sections/payment/fields"), FieldChangeRequest{
			Field: "gstRegistered", Value: "true",
		})
		testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, req))
	})

	s.Run("unknown section", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/sections/billing/fields"), FieldChangeRequest{
			Field: "x", Value: "y",
		})
		testutil.AssertStatusAndError(s.T(), testutil.DoRequest(s.router, req), http.StatusNotFound, "not_found")
	})

	s.Run("field is required", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/sections/personal/fields"), FieldChangeRequest{Value: "y"})
		testutil.AssertStatusAndError(s.T(), testutil.DoRequest(s.router, req), http.StatusBadRequest, "validation_error")
	})

	s.Run("locked field is a conflict", func() {
		s.service.EXPECT().ApplyFieldChange(gomock.Any(), s.id, fields.SectionPersonal, "firstName", "Usha").Return(nil, section.ErrFieldLocked)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/sections/personal/fields"), FieldChangeRequest{
			Field: "firstName", Value: "Usha",
		})
		testutil.AssertStatusAndError(s.T(), testutil.DoRequest(s.router, req), http.StatusConflict, "conflict")
	})
}

func (s *HandlerSuite) TestSectionActions() {
	s.service.EXPECT().BeginEdit(gomock.Any(), s.id, fields.SectionPersonal).Return(s.view(), nil)
	s.service.EXPECT().SaveSection(gomock.Any(), s.id, fields.SectionTravel).Return(s.view(), nil)
	s.service.EXPECT().CancelEdit(gomock.Any(), s.id, fields.SectionPayment).Return(nil, section.ErrNotEditing)

	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/sections/personal/edit"))))
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/sections/travel/save"))))
	testutil.AssertStatusAndError(s.T(),
		testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/sections/payment/cancel"))),
		http.StatusConflict, "conflict")
}

func (s *HandlerSuite) TestSelectBirthDate() {
	s.Run("parses the part", func() {
		s.service.EXPECT().SelectBirthDate(gomock.Any(), s.id, orchestrator.PartMonth, 4).Return(s.view(), nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/birth-date"), map[string]any{"part": "Month", "value": 4})
		testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, req))
	})

	s.Run("unknown part", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.path("/birth-date"), map[string]any{"part": "week", "value": 4})
		testutil.AssertStatusAndError(s.T(), testutil.DoRequest(s.router, req), http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestLoadRegistrant() {
	s.service.EXPECT().LoadRegistrant(gomock.Any(), s.id, service.RawRegistrant{
		Travel: map[string]string{"travelMode": "rail"},
	}).Return(s.view(), nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, s.path("/registrant"), map[string]any{
		"travel": map[string]string{"travelMode": "rail"},
	})
	testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, req))
}

// =============================================================================
// Submit
// =============================================================================

func (s *HandlerSuite) TestSubmit() {
	s.Run("returns the payload", func() {
		s.service.EXPECT().Submit(gomock.Any(), s.id).Return(&orchestrator.Payload{
			RegistrationID: s.id,
			EventName:      "Winter Silence Retreat",
			PersonalInfo:   record.New(map[string]record.Value{"firstName": record.String("Asha")}),
			PaymentInfo:    record.New(nil),
			TravelInfo:     record.New(nil),
			SubmittedAt:    time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/submit")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal("2026-10-15T09:30:00Z", (*resp)["submitted_at"])
		s.Equal(map[string]any{"firstName": "Asha"}, (*resp)["personal_info"])
	})

	s.Run("incomplete names the step", func() {
		s.service.EXPECT().Submit(gomock.Any(), s.id).Return(nil, &orchestrator.IncompleteRegistrationError{
			Step:    steps.IDPayment,
			Missing: []string{"invoiceEmail"},
		})

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/submit")))
		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		resp := testutil.UnmarshalResponse[IncompleteResponse](s.T(), rr)
		s.Equal("incomplete_registration", resp.Error)
		s.Equal(steps.IDPayment, resp.Step)
		s.Equal([]string{"invoiceEmail"}, resp.Missing)
	})

	s.Run("editing in progress is a conflict", func() {
		s.service.EXPECT().Submit(gomock.Any(), s.id).Return(nil, orchestrator.ErrEditInProgress)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, s.path("/submit")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func (s *HandlerSuite) TestBirthDateOptions() {
	s.service.EXPECT().BirthDateOptions(gomock.Any()).Return(birthdate.Months(), birthdate.YearRange{Oldest: 2012, Youngest: 2014})

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/birth-date/options"))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[BirthDateOptionsResponse](s.T(), rr)
	s.Len(resp.Months, 12)
	s.Equal([]int{2014, 2013, 2012}, resp.Years)
}

// =============================================================================
// Full flow against the real service
// =============================================================================

func TestRegistrationFlow(t *testing.T) {
	svc, err := service.New(store.NewInMemoryStore())
	if err != nil {
		t.Fatal(err)
	}
	router := chi.NewRouter()
	New(svc, nil).Register(router)

	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	do := func(req *http.Request) *http.Request {
		return testutil.WithRequestTime(req, now)
	}

	rr := testutil.DoRequest(router, do(testutil.NewJSONRequest(t, http.MethodPost, "/registrations", map[string]any{
		"event": map[string]any{"name": "Open Day"},
		"registrant": map[string]any{"personal": map[string]string{
			"firstName": "Asha", "lastName": "Rao", "email": "asha@example.com", "phone": "+91 98450 00000",
			"gender": "female", "address": "12 Lake Road", "city": "Bengaluru", "country": "India",
			"emergencyContactName": "Ravi Rao", "emergencyContactPhone": "+91 98450 11111",
		}},
	})))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[struct {
		RegistrationID string `json:"registration_id"`
	}](t, rr)
	base := "/registrations/" + created.RegistrationID

	// Date of birth and terms are missing, so both are writable while viewing.
	rr = testutil.DoRequest(router, do(testutil.NewJSONRequest(t, http.MethodPost, base+"/submit", nil)))
	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)

	for _, part := range []map[string]any{{"part": "day", "value": 31}, {"part": "month", "value": 1}, {"part": "year", "value": 1990}} {
		rr = testutil.DoRequest(router, do(testutil.NewJSONRequest(t, http.MethodPost, base+"/birth-date", part)))
		testutil.AssertStatusOK(t, rr)
	}
	rr = testutil.DoRequest(router, do(testutil.NewJSONRequest(t, http.MethodPost, base+"/sections/personal/fields", FieldChangeRequest{
		Field: "termsAccepted", Value: "on",
	})))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(router, do(testutil.NewJSONRequest(t, http.MethodPost, base+"/submit", nil)))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "submitted_at", "2026-10-15T09:30:00Z")

	rr = testutil.DoRequest(router, do(testutil.NewRequest(t, http.MethodPost, base+"/sections/personal/edit")))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, string(dErrors.CodeConflict))
}
