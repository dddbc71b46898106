package transport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/testserver"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestHTTPServer_Health(t *testing.T) {
	ts := testserver.New(t, contract.Options{})

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_Metrics(t *testing.T) {
	ts := testserver.New(t, contract.Options{})

	resp, err := http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_RequiresToken(t *testing.T) {
	ts := testserver.New(t, contract.Options{})

	var body errorResponse
	status := ts.Do(t, http.MethodGet, "/projects", "", nil, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", body.Code)
}

func TestHTTPServer_RegisterAndLogin(t *testing.T) {
	ts := testserver.New(t, contract.Options{})
	acct := ts.Register(t, user.RoleClient)

	var login struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	status := ts.Do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    acct.Email,
		"password": "password123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	require.Equal(t, acct.ID, login.User.ID)

	var body errorResponse
	status = ts.Do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    acct.Email,
		"password": "wrong-password",
	}, &body)
	require.Equal(t, http.StatusUnauthorized, status)

	status = ts.Do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    acct.Email,
		"password": "password123",
		"name":     "Again",
		"role":     "client",
	}, &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "conflict", body.Code)
}

type idStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestHTTPServer_MarketplaceFlow(t *testing.T) {
	ts := testserver.New(t, contract.Options{})
	client := ts.Register(t, user.RoleClient)
	freelancer := ts.Register(t, user.RoleFreelancer)
	rival := ts.Register(t, user.RoleFreelancer)

	// Freelancers cannot post projects.
	var errBody errorResponse
	status := ts.Do(t, http.MethodPost, "/projects", freelancer.Token, map[string]any{
		"title": "x", "description": "y", "budget": 10,
	}, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	var proj idStatus
	status = ts.Do(t, http.MethodPost, "/projects", client.Token, map[string]any{
		"title":           "Landing page",
		"description":     "Marketing site",
		"budget":          "1500.00",
		"skills_required": []string{"html", "css"},
	}, &proj)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "open", proj.Status)

	var bid idStatus
	status = ts.Do(t, http.MethodPost, "/proposals", freelancer.Token, map[string]any{
		"project_id":      proj.ID,
		"cover_letter":    "I build landing pages",
		"proposed_amount": 1000,
	}, &bid)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "pending", bid.Status)

	var rivalBid idStatus
	status = ts.Do(t, http.MethodPost, "/proposals", rival.Token, map[string]any{
		"project_id":      proj.ID,
		"cover_letter":    "Me too",
		"proposed_amount": 900,
	}, &rivalBid)
	require.Equal(t, http.StatusCreated, status)

	// A second bid from the same freelancer is a conflict.
	status = ts.Do(t, http.MethodPost, "/proposals", freelancer.Token, map[string]any{
		"project_id":      proj.ID,
		"cover_letter":    "Again",
		"proposed_amount": 800,
	}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "conflict", errBody.Code)

	// Only the project client sees its proposals.
	status = ts.Do(t, http.MethodGet, "/projects/"+proj.ID+"/proposals", rival.Token, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	var accepted struct {
		Message       string `json:"message"`
		ContractID    string `json:"contract_id"`
		RejectedCount int    `json:"rejected_count"`
	}
	status = ts.Do(t, http.MethodPost, "/proposals/"+bid.ID+"/accept", client.Token, nil, &accepted)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, accepted.ContractID)
	require.Equal(t, 1, accepted.RejectedCount)

	var mine idStatus
	status = ts.Do(t, http.MethodGet, "/projects/"+proj.ID+"/my-proposal", rival.Token, nil, &mine)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "rejected", mine.Status)

	status = ts.Do(t, http.MethodGet, "/projects/"+proj.ID, client.Token, nil, &proj)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "in_progress", proj.Status)

	contractPath := "/contracts/" + accepted.ContractID

	// Only the client pays.
	status = ts.Do(t, http.MethodPost, contractPath+"/payments", freelancer.Token, map[string]any{"amount": 100}, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	var payment struct {
		ID              string `json:"id"`
		Amount          string `json:"amount"`
		TransactionID   string `json:"transaction_id"`
		Status          string `json:"status"`
		RemainingAmount string `json:"remaining_amount"`
		PaymentStatus   string `json:"payment_status"`
	}
	status = ts.Do(t, http.MethodPost, contractPath+"/payments", client.Token, map[string]any{"amount": "400.50"}, &payment)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "400.5", payment.Amount)
	require.Equal(t, "completed", payment.Status)
	require.Equal(t, "599.5", payment.RemainingAmount)
	require.Equal(t, "partially_paid", payment.PaymentStatus)
	require.Regexp(t, `^TXN-[0-9A-F]{32}$`, payment.TransactionID)

	status = ts.Do(t, http.MethodPost, contractPath+"/payments", client.Token, map[string]any{"amount": 600}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_state", errBody.Code)

	status = ts.Do(t, http.MethodPost, contractPath+"/payments", client.Token, map[string]any{"amount": 0}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_input", errBody.Code)

	status = ts.Do(t, http.MethodPost, contractPath+"/payments", client.Token, map[string]any{"amount": 599.5}, &payment)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "0", payment.RemainingAmount)
	require.Equal(t, "paid", payment.PaymentStatus)

	var detail struct {
		Status            string `json:"status"`
		TotalPaid         string `json:"total_paid"`
		PaymentPercentage string `json:"payment_percentage"`
		Payments          []struct {
			ID string `json:"id"`
		} `json:"payments"`
	}
	status = ts.Do(t, http.MethodGet, contractPath, freelancer.Token, nil, &detail)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "1000", detail.TotalPaid)
	require.Equal(t, "100", detail.PaymentPercentage)
	require.Len(t, detail.Payments, 2)

	status = ts.Do(t, http.MethodGet, contractPath, rival.Token, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	// Milestones.
	var stages []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Progress int    `json:"progress"`
	}
	status = ts.Do(t, http.MethodPost, "/projects/"+proj.ID+"/milestones", client.Token, nil, &stages)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, stages, 5)

	status = ts.Do(t, http.MethodPost, "/projects/"+proj.ID+"/milestones", freelancer.Token, nil, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "conflict", errBody.Code)

	var ms struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	status = ts.Do(t, http.MethodPut, "/milestones/"+stages[0].ID, client.Token, map[string]any{"progress": 50}, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	status = ts.Do(t, http.MethodPut, "/milestones/"+stages[0].ID, freelancer.Token, map[string]any{
		"status": "in_progress", "progress": 140,
	}, &ms)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "in_progress", ms.Status)
	require.Equal(t, 100, ms.Progress)

	status = ts.Do(t, http.MethodPost, "/milestones/"+stages[0].ID+"/updates", freelancer.Token, map[string]any{
		"content": "Wireframes shared",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var updates []struct {
		Content  string `json:"content"`
		UserName string `json:"user_name"`
	}
	status = ts.Do(t, http.MethodGet, "/milestones/"+stages[0].ID+"/updates", client.Token, nil, &updates)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, updates, 1)
	require.Equal(t, "Wireframes shared", updates[0].Content)

	// Completion, then reviews.
	var done idStatus
	status = ts.Do(t, http.MethodPost, contractPath+"/complete", freelancer.Token, nil, &done)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "completed", done.Status)

	status = ts.Do(t, http.MethodPost, contractPath+"/payments", client.Token, map[string]any{"amount": 1}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)

	status = ts.Do(t, http.MethodPost, contractPath+"/reviews", client.Token, map[string]any{"rating": 5, "comment": "Great"}, nil)
	require.Equal(t, http.StatusCreated, status)
	status = ts.Do(t, http.MethodPost, contractPath+"/reviews", client.Token, map[string]any{"rating": 4}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "conflict", errBody.Code)

	var profile struct {
		AverageRating string `json:"average_rating"`
		TotalReviews  int    `json:"total_reviews"`
	}
	status = ts.Do(t, http.MethodGet, "/users/"+freelancer.ID+"/reviews", rival.Token, nil, &profile)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, profile.TotalReviews)
	require.Equal(t, "5", profile.AverageRating)

	// Notifications reach the freelancer and can be marked read.
	var notes []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Read bool   `json:"read"`
	}
	status = ts.Do(t, http.MethodGet, "/notifications", freelancer.Token, nil, &notes)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, notes)

	status = ts.Do(t, http.MethodPost, "/notifications/"+notes[0].ID+"/read", rival.Token, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)
	status = ts.Do(t, http.MethodPost, "/notifications/"+notes[0].ID+"/read", freelancer.Token, nil, nil)
	require.Equal(t, http.StatusOK, status)
}
