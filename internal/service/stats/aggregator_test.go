package stats

import (
	"strconv"
	"testing"
	"time"

	"CreditPull/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)

func payment(id, from, to string, amount string, at time.Time) models.PaymentRecord {
	return models.PaymentRecord{
		ID:           id,
		From:         from,
		To:           to,
		Amount:       amount,
		TokenAddress: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", // USDC mainnet
		Timestamp:    strconv.FormatInt(at.Unix(), 10),
	}
}

func TestSummarizeEmptyInputLaw(t *testing.T) {
	for _, chain := range []models.Chain{models.ChainEthereum, models.ChainPolygon, models.ChainGoerli} {
		enriched := Enrich(nil, chain)
		require.NotNil(t, enriched)
		require.Empty(t, enriched)

		got := Summarize(enriched, testNow)
		assert.Equal(t, models.PaymentStats{
			TotalAmount:        0,
			TotalTxns:          0,
			EarliestTxnAgeDays: 0,
			LastTxnAgeDays:     999,
			UniquePayees:       0,
			UniquePayers:       0,
		}, got)
	}
}

func TestEnrichDeduplicatesByID(t *testing.T) {
	records := []models.PaymentRecord{
		payment("a", "0x1", "0x2", "1000000", testNow.Add(-24*time.Hour)),
		payment("a", "0x1", "0x2", "1000000", testNow.Add(-24*time.Hour)),
		payment("b", "0x1", "0x3", "2000000", testNow.Add(-48*time.Hour)),
	}
	enriched := Enrich(records, models.ChainEthereum)
	require.Len(t, enriched, 2)
	assert.Equal(t, "a", enriched[0].ID)
	assert.Equal(t, "b", enriched[1].ID)
}

func TestEnrichUnknownTokenPricedAtZero(t *testing.T) {
	r := payment("a", "0x1", "0x2", "5000000", testNow)
	r.TokenAddress = "0xdeadbeef00000000000000000000000000000000"
	enriched := Enrich([]models.PaymentRecord{r}, models.ChainEthereum)
	require.Len(t, enriched, 1)
	assert.Equal(t, models.UnknownTokenSymbol, enriched[0].TokenSymbol)
	assert.Zero(t, enriched[0].TokenUSDPrice)
	assert.Zero(t, enriched[0].AmountUSD)
}

func TestEnrichPreSetTokenSymbol(t *testing.T) {
	r := payment("a", "0x1", "0x2", "3000000000000000000", testNow)
	r.TokenAddress = ""
	r.TokenSymbol = "DAI"
	enriched := Enrich([]models.PaymentRecord{r}, models.ChainPolygon)
	require.Len(t, enriched, 1)
	assert.Equal(t, "DAI", enriched[0].TokenSymbol)
	assert.Equal(t, int64(3), enriched[0].AmountUSD)
}

func TestSummarizeStats(t *testing.T) {
	records := []models.PaymentRecord{
		payment("a", "0xpayer", "0xpayee", "10000000", testNow.Add(-100*24*time.Hour)), // $10
		payment("b", "0xpayer", "0xother", "5000000", testNow.Add(-50*24*time.Hour)),   // $5
		payment("c", "0xpayer", "0xpayee", "1000000", testNow.Add(-36*time.Hour)),      // $1
	}
	enriched := Enrich(records, models.ChainEthereum)
	got := Summarize(enriched, testNow)

	assert.Equal(t, int64(16), got.TotalAmount)
	assert.Equal(t, 3, got.TotalTxns)
	assert.Equal(t, 100, got.EarliestTxnAgeDays)
	assert.Equal(t, 1, got.LastTxnAgeDays) // 36h truncates to 1 day
	assert.Equal(t, 2, got.UniquePayees)
	assert.Equal(t, 1, got.UniquePayers)
}

func TestSummarizeDeterministic(t *testing.T) {
	records := []models.PaymentRecord{
		payment("a", "0x1", "0x2", "1000000", testNow.Add(-10*24*time.Hour)),
		payment("b", "0x2", "0x1", "2000000", testNow.Add(-5*24*time.Hour)),
	}
	enriched := Enrich(records, models.ChainEthereum)
	first := Summarize(enriched, testNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Summarize(enriched, testNow))
	}
}

func TestFilterByParty(t *testing.T) {
	enriched := Enrich([]models.PaymentRecord{
		payment("a", "0xpayer", "0xpayee", "1000000", testNow),
		payment("b", "0xpayer", "0xother", "1000000", testNow),
		payment("c", "0xother", "0xpayee", "1000000", testNow),
	}, models.ChainEthereum)

	assert.Len(t, FilterByParty(enriched, "0xpayer", ""), 2)
	assert.Len(t, FilterByParty(enriched, "", "0xpayee"), 2)

	mutual := FilterByParty(enriched, "0xpayer", "0xpayee")
	require.Len(t, mutual, 1)
	assert.Equal(t, "a", mutual[0].ID)

	assert.Empty(t, FilterByParty(enriched, "0xnobody", "0xpayee"))
}

func TestDaysBetweenTruncates(t *testing.T) {
	base := testNow
	assert.Equal(t, 0, DaysBetween(base.Add(-23*time.Hour), base))
	assert.Equal(t, 1, DaysBetween(base.Add(-25*time.Hour), base))
	assert.Equal(t, 90, DaysBetween(base.Add(-90*24*time.Hour), base))
}
