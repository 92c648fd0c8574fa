package stdlib

import (
	"time"

	"github.com/funvibe/aurora/internal/evaluator"
)

// now is replaced in tests.
var now = time.Now

func loadTime(r *registry) {
	r.fn("clock", 0, func(_ *evaluator.Context, _ []evaluator.Value) (evaluator.Value, error) {
		return integer(now().UnixMilli()), nil
	})
	r.fn("now", 0, func(_ *evaluator.Context, _ []evaluator.Value) (evaluator.Value, error) {
		t := now()
		m := evaluator.NewMap()
		m.SetString("year", integer(int64(t.Year())))
		m.SetString("month", integer(int64(t.Month())))
		m.SetString("day", integer(int64(t.Day())))
		m.SetString("hour", integer(int64(t.Hour())))
		m.SetString("minute", integer(int64(t.Minute())))
		m.SetString("second", integer(int64(t.Second())))
		return m, nil
	})
}
