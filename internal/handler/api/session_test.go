//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/handler/api"
	"consultbook/internal/pkg/errs"
	"consultbook/internal/usecase"
	"consultbook/tests/common/httptest"
	usecasemock "consultbook/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockConversation *usecasemock.MockConversation
	handler          *api.SessionHandler
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockConversation = usecasemock.NewMockConversation(s.mockCtrl)
	s.handler = api.NewSessionHandler(s.mockConversation)

	s.router.POST("/sessions", s.handler.Start)
	s.router.POST("/sessions/:id/date", s.handler.ChooseDate)
	s.router.POST("/sessions/:id/slot", s.handler.ChooseSlot)
	s.router.POST("/sessions/:id/confirm", s.handler.Confirm)
	s.router.POST("/sessions/:id/back", s.handler.Back)
	s.router.DELETE("/sessions/:id", s.handler.Cancel)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) session(step usecase.Step) usecase.Session {
	contact, err := booking.NewContact("Anna", "+79001234567")
	s.Require().NoError(err)
	return usecase.Session{
		ID:      uuid.New(),
		Contact: contact,
		Step:    step,
	}
}

func (s *SessionHandlerTestSuite) TestStart() {
	s.Run("creates session", func() {
		session := s.session(usecase.StepChoosingDate)
		s.mockConversation.EXPECT().Start(gomock.Any(), gomock.Any()).Return(session, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"name": "Anna", "phone": "+79001234567"}, "")

		s.Equal(http.StatusCreated, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal(session.ID.String(), resp["id"])
		s.Equal("choosing_date", resp["step"])
	})

	s.Run("missing contact fields", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"name": "Anna"}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("invalid phone", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"name": "Anna", "phone": "12345"}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unconfigured schedule", func() {
		s.mockConversation.EXPECT().Start(gomock.Any(), gomock.Any()).
			Return(usecase.Session{}, errs.ErrNoSchedule)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions",
			map[string]any{"name": "Anna", "phone": "+79001234567"}, "")
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})
}

func (s *SessionHandlerTestSuite) TestChooseDate() {
	session := s.session(usecase.StepChoosingSlot)
	url := "/sessions/" + session.ID.String() + "/date"
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	slots := []booking.Slot{{Start: date.Add(10 * time.Hour)}}

	s.Run("offers slots", func() {
		s.mockConversation.EXPECT().ChooseDate(gomock.Any(), session.ID, date).
			Return(usecase.Result{Session: session, Outcome: usecase.OutcomeSlotsOffered, Slots: slots}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"date": "2026-09-15"}, "")

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal("slots_offered", resp["outcome"])
		s.Len(resp["slots"], 1)
	})

	s.Run("bad date format", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"date": "15.09.2026"}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("bad session id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions/not-a-uuid/date",
			map[string]any{"date": "2026-09-15"}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown session", func() {
		s.mockConversation.EXPECT().ChooseDate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(usecase.Result{}, errs.ErrSessionNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"date": "2026-09-15"}, "")
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("wrong step", func() {
		s.mockConversation.EXPECT().ChooseDate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(usecase.Result{}, errs.ErrInvalidStep)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"date": "2026-09-15"}, "")
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *SessionHandlerTestSuite) TestChooseSlot() {
	session := s.session(usecase.StepConfirming)
	url := "/sessions/" + session.ID.String() + "/slot"
	startAt := time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)

	s.Run("selects slot", func() {
		s.mockConversation.EXPECT().ChooseSlot(gomock.Any(), session.ID, startAt).
			Return(usecase.Result{Session: session, Outcome: usecase.OutcomeConfirmWait}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"startsAt": "2026-09-15T11:00:00"}, "")

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal("awaiting_confirmation", resp["outcome"])
	})

	s.Run("bad timestamp", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"startsAt": "11:00"}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("stale slot refreshes the offer", func() {
		refreshed := s.session(usecase.StepChoosingSlot)
		fresh := []booking.Slot{{Start: startAt.Add(time.Hour)}}
		s.mockConversation.EXPECT().ChooseSlot(gomock.Any(), session.ID, startAt).
			Return(usecase.Result{Session: refreshed, Outcome: usecase.OutcomeSlotTaken, Slots: fresh}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"startsAt": "2026-09-15T11:00:00"}, "")

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal("slot_taken", resp["outcome"])
		s.Len(resp["slots"], 1)
	})
}

func (s *SessionHandlerTestSuite) TestConfirm() {
	session := s.session(usecase.StepDone)
	url := "/sessions/" + session.ID.String() + "/confirm"

	s.Run("books the slot", func() {
		b := booking.NewBooking(session.Contact, time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC))
		s.mockConversation.EXPECT().Confirm(gomock.Any(), session.ID).
			Return(usecase.Result{Session: session, Outcome: usecase.OutcomeBooked, Booking: b}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal("booked", resp["outcome"])
		s.NotNil(resp["booking"])
	})

	s.Run("finished session", func() {
		s.mockConversation.EXPECT().Confirm(gomock.Any(), session.ID).
			Return(usecase.Result{}, errs.ErrSessionFinished)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *SessionHandlerTestSuite) TestBack() {
	session := s.session(usecase.StepChoosingDate)
	url := "/sessions/" + session.ID.String() + "/back"

	s.mockConversation.EXPECT().Back(gomock.Any(), session.ID).
		Return(usecase.Result{Session: session, Outcome: usecase.OutcomeBackToDate}, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	httptest.DecodeJSON(s.T(), w, &resp)
	s.Equal("back_to_date", resp["outcome"])
}

func (s *SessionHandlerTestSuite) TestCancel() {
	session := s.session(usecase.StepCancelled)
	url := "/sessions/" + session.ID.String()

	s.Run("cancels conversation", func() {
		s.mockConversation.EXPECT().Cancel(gomock.Any(), session.ID).
			Return(usecase.Result{Session: session, Outcome: usecase.OutcomeCancelled}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		httptest.DecodeJSON(s.T(), w, &resp)
		s.Equal("cancelled", resp["outcome"])
	})

	s.Run("unknown session", func() {
		s.mockConversation.EXPECT().Cancel(gomock.Any(), session.ID).
			Return(usecase.Result{}, errs.ErrSessionNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNotFound, w.Code)
	})
}
