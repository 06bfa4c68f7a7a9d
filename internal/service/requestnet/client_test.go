package requestnet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CreditPull/internal/domain/models"
)

var cursorPattern = regexp.MustCompile(`id_gt: "([^"]*)"`)

type pageServer struct {
	t        *testing.T
	total    int
	requests int
	cursors  []string
}

func (s *pageServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests++

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode query: %v", err)
		return
	}

	match := cursorPattern.FindStringSubmatch(req.Query)
	if match == nil {
		s.t.Error("query is missing the id cursor")
		return
	}
	cursor := match[1]
	s.cursors = append(s.cursors, cursor)

	start := 0
	if cursor != "" {
		if _, err := fmt.Sscanf(cursor, "p%06d", &start); err != nil {
			s.t.Errorf("bad cursor %q: %v", cursor, err)
			return
		}
	}

	payments := []models.PaymentRecord{}
	for i := start; i < s.total && i < start+DefaultChunkSize; i++ {
		payments = append(payments, models.PaymentRecord{
			ID:        fmt.Sprintf("p%06d", i+1),
			From:      "0x1111111111111111111111111111111111111111",
			To:        "0x2222222222222222222222222222222222222222",
			Amount:    "1000000000000000000",
			Timestamp: "1700000000",
			Currency:  "USDC",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{"payments": payments},
	})
}

func TestGetPaymentsPaginatesByIDCursor(t *testing.T) {
	srv := &pageServer{t: t, total: 1400}
	server := httptest.NewServer(srv)
	defer server.Close()

	client := New(server.URL, "", time.Second)

	payments, err := client.GetPayments(context.Background(), "0x1111111111111111111111111111111111111111", "")
	require.NoError(t, err)

	assert.Len(t, payments, 1400)
	assert.Equal(t, 2, srv.requests)
	assert.Equal(t, []string{"", "p001000"}, srv.cursors)
	assert.Equal(t, "p001400", payments[len(payments)-1].ID)
}

func TestGetPaymentsSinglePartialPage(t *testing.T) {
	srv := &pageServer{t: t, total: 3}
	server := httptest.NewServer(srv)
	defer server.Close()

	client := New(server.URL, "", time.Second)

	payments, err := client.GetPayments(context.Background(), "", "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)

	assert.Len(t, payments, 3)
	assert.Equal(t, 1, srv.requests)
}

func TestGetInvoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rec-1", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"owner": "0x3333333333333333333333333333333333333333",
			"payer": "0x1111111111111111111111111111111111111111",
			"payee": "0x2222222222222222222222222222222222222222",
			"expectedAmount": "250.5",
			"creationDate": 1700000000,
			"currencyInfo": {"symbol": "USDC"}
		}`)
	}))
	defer server.Close()

	client := New(server.URL, server.URL, time.Second)

	invoice, err := client.GetInvoice(context.Background(), "rec-1")
	require.NoError(t, err)

	assert.Equal(t, "0x1111111111111111111111111111111111111111", invoice.Payer)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", invoice.Payee)
	assert.Equal(t, "USDC", invoice.Currency)
	assert.Equal(t, "250.5", invoice.Amount.String())

	creation := time.Unix(1700000000, 0).UTC()
	assert.Equal(t, creation, invoice.CreationDate)
	assert.Equal(t, creation.Add(30*24*time.Hour), invoice.DueDate)
}

func TestGetInvoiceNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, server.URL, time.Second)

	_, err := client.GetInvoice(context.Background(), "rec-missing")
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
