package stats

import (
	"strconv"
	"time"

	"CreditPull/internal/domain/models"
)

// Package stats implements the payment statistics aggregation shared by the
// invoice-style adapters. Everything here is pure: no I/O, no clock access —
// the reference time is always passed in.

// Enrich deduplicates raw payment records by id and attaches the derived
// columns: parsed transaction time, token symbol, USD price and USD amount.
// Unknown tokens resolve to the "Other" symbol with price 0. An empty input
// yields an empty, well-typed result, never an error.
func Enrich(records []models.PaymentRecord, chain models.Chain) []models.EnrichedPayment {
	enriched := make([]models.EnrichedPayment, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		symbol := r.TokenSymbol
		if symbol == "" {
			symbol = models.TokenSymbol(chain, r.TokenAddress)
		}
		price := models.TokenUSDPrice[symbol]
		amount, _ := strconv.ParseFloat(r.Amount, 64)

		enriched = append(enriched, models.EnrichedPayment{
			ID:            r.ID,
			From:          r.From,
			To:            r.To,
			TxnTime:       parseUnixSeconds(r.Timestamp),
			TokenSymbol:   symbol,
			TokenUSDPrice: price,
			Amount:        amount,
			AmountUSD:     int64(amount * price),
		})
	}
	return enriched
}

// Summarize computes descriptive statistics over enriched payments relative
// to now. Zero records return the fixed zero/sentinel defaults. Ages
// truncate to whole days; boundary-day behavior feeds eligibility checks
// downstream, so the truncation must not be rounded.
func Summarize(enriched []models.EnrichedPayment, now time.Time) models.PaymentStats {
	if len(enriched) == 0 {
		return models.EmptyPaymentStats()
	}

	var total int64
	earliest, latest := enriched[0].TxnTime, enriched[0].TxnTime
	payees := make(map[string]struct{})
	payers := make(map[string]struct{})
	for _, p := range enriched {
		total += p.AmountUSD
		if p.TxnTime.Before(earliest) {
			earliest = p.TxnTime
		}
		if p.TxnTime.After(latest) {
			latest = p.TxnTime
		}
		payees[p.To] = struct{}{}
		payers[p.From] = struct{}{}
	}

	return models.PaymentStats{
		TotalAmount:        total,
		TotalTxns:          len(enriched),
		EarliestTxnAgeDays: DaysBetween(earliest, now),
		LastTxnAgeDays:     DaysBetween(latest, now),
		UniquePayees:       len(payees),
		UniquePayers:       len(payers),
	}
}

// FilterByParty returns the subset matching the given parties. An empty
// address means no constraint on that side; both set means strictly between
// the pair.
func FilterByParty(enriched []models.EnrichedPayment, fromAddress, toAddress string) []models.EnrichedPayment {
	out := make([]models.EnrichedPayment, 0, len(enriched))
	for _, p := range enriched {
		if fromAddress != "" && p.From != fromAddress {
			continue
		}
		if toAddress != "" && p.To != toAddress {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DaysBetween is the whole number of days from a to b, truncated.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func parseUnixSeconds(s string) time.Time {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
