package evaluator

import (
	"hash/fnv"
	"sync/atomic"
)

type ObjectType string

// Kind names as they appear in error messages.
const (
	INTEGER_OBJ    = "int"
	FLOAT_OBJ      = "float"
	STRING_OBJ     = "str"
	BOOLEAN_OBJ    = "bool"
	LIST_OBJ       = "array"
	MAP_OBJ        = "map"
	FUNCTION_OBJ   = "fn"
	SUBROUTINE_OBJ = "sub"
	UNIT_OBJ       = "unit"
)

// Value is a runtime value. The set of implementations is closed.
type Value interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
	value()
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

var identityCounter atomic.Uint32

// nextIdentity hands out hash values for values compared by identity.
func nextIdentity() uint32 {
	return identityCounter.Add(1)
}
