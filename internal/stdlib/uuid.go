package stdlib

import (
	"github.com/google/uuid"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadUUID(r *registry) {
	r.fn("uuid", 0, func(_ *evaluator.Context, _ []evaluator.Value) (evaluator.Value, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, failure("uuid", err)
		}
		return str(id.String()), nil
	})
	r.fn("uuid_v7", 0, func(_ *evaluator.Context, _ []evaluator.Value) (evaluator.Value, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, failure("uuid_v7", err)
		}
		return str(id.String()), nil
	})
	r.fn("uuid?", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		s, ok := args[0].(*evaluator.String)
		if !ok {
			return evaluator.FALSE, nil
		}
		_, err := uuid.Parse(s.Value)
		return evaluator.NativeBool(err == nil), nil
	})
}
