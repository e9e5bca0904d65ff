package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdsingh122918/steamboat-sub004/internal/middleware"
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/service"
)

type attendeeJSON struct {
	ID    string `json:"attendeeId"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toAttendeeJSON(a *models.Attendee) attendeeJSON {
	return attendeeJSON{ID: a.ID, Name: a.Name, Email: a.Email}
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendee, token, err := a.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"attendee": toAttendeeJSON(attendee),
		"token":    token,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendee, token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"attendee": toAttendeeJSON(attendee),
		"token":    token,
	})
}

func (a *API) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := a.trips.Create(r.Context(), middleware.GetAttendeeID(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"tripId": trip.ID,
		"name":   trip.Name,
	})
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AttendeeID string      `json:"attendeeId"`
		Role       models.Role `json:"role"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleMember
	}

	member, err := a.trips.AddMember(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"), req.AttendeeID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"attendeeId": member.AttendeeID,
		"role":       member.Role,
	})
}

type expenseJSON struct {
	ID           string               `json:"id"`
	PayerID      string               `json:"payerId"`
	AmountCents  int64                `json:"amount_cents"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	SplitType    models.SplitType     `json:"splitType"`
	Status       models.ExpenseStatus `json:"status"`
	Participants []participantJSON    `json:"participants"`
	CreatedAt    int64                `json:"createdAt"`
}

type participantJSON struct {
	AttendeeID string `json:"attendeeId"`
	OptedIn    bool   `json:"optedIn"`
	ShareCents *int64 `json:"share_cents,omitempty"`
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	participants := make([]participantJSON, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = participantJSON{
			AttendeeID: p.AttendeeID,
			OptedIn:    p.OptedIn,
			ShareCents: p.ShareCents,
		}
	}
	return expenseJSON{
		ID:           e.ID,
		PayerID:      e.PayerID,
		AmountCents:  e.AmountCents,
		Description:  e.Description,
		Category:     e.Category,
		SplitType:    e.SplitType,
		Status:       e.Status,
		Participants: participants,
		CreatedAt:    e.CreatedAt,
	}
}

func (a *API) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req service.CreateExpenseInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := a.expenses.Create(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toExpenseJSON(expense))
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := a.expenses.List(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeData(w, http.StatusOK, out)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := a.expenses.Delete(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *API) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePaymentInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := a.expenses.CreatePayment(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"id":           payment.ID,
		"fromId":       payment.FromID,
		"toId":         payment.ToID,
		"amount_cents": payment.AmountCents,
		"status":       payment.Status,
	})
}

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := a.ledger.Balances(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, balances)
}

func (a *API) handlePlanSettlement(w http.ResponseWriter, r *http.Request) {
	plan, err := a.ledger.PlanSettlement(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, plan)
}

func (a *API) handleExecuteSettlement(w http.ResponseWriter, r *http.Request) {
	result, err := a.ledger.ExecuteSettlement(r.Context(),
		middleware.GetAttendeeID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
