package stdlib

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/aurora/internal/evaluator"
)

const sqlDriver = "sqlite"

func loadSQL(r *registry) {
	r.fn("sql_open", 1, builtinSQLOpen)
}

// sql_open(path) opens a SQLite database and returns a map of natives
// bound to it: exec(query, args...), query(query, args...) and close().
// ":memory:" opens a private in-memory database.
func builtinSQLOpen(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	path, err := stringArg("sql_open", args, 0)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(sqlDriver, path)
	if err != nil {
		return nil, failure("sql_open", err)
	}
	// one connection so an in-memory database is the same across calls
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, failure("sql_open", err)
	}

	handle := evaluator.NewMap()
	handle.SetString("exec", evaluator.NewNativeFunction("exec", evaluator.Variadic, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		query, params, err := sqlArgs("exec", args)
		if err != nil {
			return nil, err
		}
		res, err := db.Exec(query, params...)
		if err != nil {
			return nil, failure("exec", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, failure("exec", err)
		}
		return integer(n), nil
	}))
	handle.SetString("query", evaluator.NewNativeFunction("query", evaluator.Variadic, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		query, params, err := sqlArgs("query", args)
		if err != nil {
			return nil, err
		}
		return sqlQuery(db, query, params)
	}))
	handle.SetString("close", evaluator.NewNativeSubroutine("close", 0, func(_ *evaluator.Context, _ []evaluator.Value) error {
		if err := db.Close(); err != nil {
			return failure("close", err)
		}
		return nil
	}))
	return handle, nil
}

// sqlArgs splits a call into the statement and its bound parameters.
func sqlArgs(name string, args []evaluator.Value) (string, []interface{}, error) {
	if len(args) == 0 {
		return "", nil, failuref(name, "missing statement")
	}
	query, err := stringArg(name, args, 0)
	if err != nil {
		return "", nil, err
	}
	params := make([]interface{}, 0, len(args)-1)
	for i, a := range args[1:] {
		switch v := a.(type) {
		case *evaluator.Integer:
			params = append(params, v.Value)
		case *evaluator.Float:
			params = append(params, v.Value)
		case *evaluator.String:
			params = append(params, v.Value)
		case *evaluator.Boolean:
			params = append(params, v.Value)
		case *evaluator.Unit:
			params = append(params, nil)
		default:
			return "", nil, argError(name, i+1, "num, str, bool or unit", a)
		}
	}
	return query, params, nil
}

// sqlQuery returns the rows as a list of maps keyed by column name, with
// columns in result order.
func sqlQuery(db *sql.DB, query string, params []interface{}) (evaluator.Value, error) {
	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, failure("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, failure("query", err)
	}
	out := evaluator.NewList()
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, failure("query", err)
		}
		row := evaluator.NewMap()
		for i, c := range cols {
			row.SetString(c, fromSQL(raw[i]))
		}
		out.Elements = append(out.Elements, row)
	}
	if err := rows.Err(); err != nil {
		return nil, failure("query", err)
	}
	return out, nil
}

func fromSQL(v interface{}) evaluator.Value {
	switch val := v.(type) {
	case nil:
		return evaluator.UNIT
	case int64:
		return integer(val)
	case float64:
		return float(val)
	case bool:
		return evaluator.NativeBool(val)
	case string:
		return str(val)
	case []byte:
		return str(string(val))
	case time.Time:
		return str(val.Format(time.RFC3339Nano))
	}
	return str(fmt.Sprint(v))
}
