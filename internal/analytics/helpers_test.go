package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

const tolerance = 1e-9

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func series(symbol string, points ...model.PricePoint) model.PriceSeries {
	return model.PriceSeries{Symbol: symbol, Points: points}
}

func pp(date string, price float64) model.PricePoint {
	return model.PricePoint{Date: day(date), Close: price}
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
