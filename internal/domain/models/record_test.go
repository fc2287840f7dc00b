package models

import "testing"

func TestMergeQuoteFirstWriterWins(t *testing.T) {
	rec := NewStockRecord("RELIANCE")

	rec.MergeQuote(Quote{Price: Float(100), DayHigh: Float(105)}, "nse")
	rec.MergeQuote(Quote{Price: Float(999), DayLow: Float(95)}, "yahoo")

	if *rec.Price != 100 {
		t.Fatalf("price overwritten: got %v", *rec.Price)
	}
	if *rec.DayLow != 95 {
		t.Fatalf("expected day_low from second source, got %v", *rec.DayLow)
	}
	if rec.Provenance[FieldPrice] != "nse" {
		t.Fatalf("unexpected price provenance %q", rec.Provenance[FieldPrice])
	}
	if rec.Provenance[FieldDayLow] != "yahoo" {
		t.Fatalf("unexpected day_low provenance %q", rec.Provenance[FieldDayLow])
	}
}

func TestMergeQuoteNilDoesNotClobber(t *testing.T) {
	rec := NewStockRecord("TCS")

	rec.MergeQuote(Quote{Price: Float(50)}, "nse")
	rec.MergeQuote(Quote{}, "yahoo")

	if rec.Price == nil || *rec.Price != 50 {
		t.Fatalf("price lost after empty merge")
	}
	if _, ok := rec.Provenance[FieldDayHigh]; ok {
		t.Fatalf("provenance written for absent field")
	}
}

func TestQuoteComplete(t *testing.T) {
	rec := NewStockRecord("INFY")
	if rec.QuoteComplete() {
		t.Fatalf("empty record reported complete")
	}
	rec.MergeQuote(Quote{Price: Float(1), DayHigh: Float(2), DayLow: Float(3), Volume: Float(4)}, "nse")
	if !rec.QuoteComplete() {
		t.Fatalf("full record reported incomplete")
	}
}

func TestSetIndicatorsWriteOnce(t *testing.T) {
	rec := NewStockRecord("SBIN")

	rec.SetIndicators(Float(10), Float(8), TrendPositive, "yahoo")
	rec.SetIndicators(Float(99), Float(99), TrendNegative, "other")

	if *rec.ShortMA != 10 || *rec.LongMA != 8 {
		t.Fatalf("indicators overwritten")
	}
	if *rec.Trend != TrendPositive {
		t.Fatalf("trend overwritten")
	}
	if rec.Provenance[FieldTrend] != "derived:yahoo" {
		t.Fatalf("unexpected trend provenance %q", rec.Provenance[FieldTrend])
	}
}

func TestSetSentimentNilKeptDistinct(t *testing.T) {
	rec := NewStockRecord("ITC")

	rec.SetSentiment(nil, "newsapi")
	if rec.SentimentScore != nil {
		t.Fatalf("nil score should stay nil")
	}

	rec.SetSentiment(Float(0), "newsapi")
	if rec.SentimentScore == nil || *rec.SentimentScore != 0 {
		t.Fatalf("genuine zero score should be stored")
	}
}

func TestMarkGroupFailed(t *testing.T) {
	rec := NewStockRecord("LT")
	rec.MarkGroupFailed(GroupQuote)
	if rec.Provenance[GroupQuote] != SourceFailed {
		t.Fatalf("group not marked failed")
	}
}
