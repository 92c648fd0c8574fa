package config

const SourceFileExt = ".aur"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".aur", ".aurora"}

// ConfigFileNames are searched, in order, by FindConfig.
var ConfigFileNames = []string{"aurora.yaml", "aurora.yml"}

const (
	DefaultPrompt      = "> "
	ContinuationPrompt = ". "
	DefaultHistoryFile = ".aurora_history"
	MaxHistoryEntries  = 1000
	ReplQuitCommand    = ":quit"
)

// Color modes accepted by the color setting
const (
	ColorModeAuto   = "auto"
	ColorModeAlways = "always"
	ColorModeNever  = "never"
)

var Version = "0.3.0"

// Built-in function names referenced by the runtime itself
const (
	PrintFuncName  = "print"
	StrFuncName    = "str"
	TypeOfFuncName = "type_of"
	LenFuncName    = "len"
	AssertFuncName = "assert"
	MathModuleName = "math"
)

// Value kind names as reported by type_of and in type errors
const (
	StringTypeName     = "str"
	NumberTypeName     = "num"
	BoolTypeName       = "bool"
	ListTypeName       = "array"
	MapTypeName        = "map"
	FunctionTypeName   = "fn"
	SubroutineTypeName = "sub"
	UnitTypeName       = "unit"
)

// Native groups that can be switched off with stdlib.disable or sandbox
const (
	GroupCore    = "core"
	GroupList    = "list"
	GroupString  = "string"
	GroupMath    = "math"
	GroupTime    = "time"
	GroupIO      = "io"
	GroupFile    = "file"
	GroupProcess = "process"
	GroupUUID    = "uuid"
	GroupYAML    = "yaml"
	GroupSQL     = "sql"
	GroupTerm    = "term"
)

// AllGroups lists every native group in load order.
var AllGroups = []string{
	GroupCore, GroupList, GroupString, GroupMath, GroupTime, GroupIO,
	GroupFile, GroupProcess, GroupUUID, GroupYAML, GroupSQL, GroupTerm,
}

// SandboxedGroups are the groups that touch the host and are left out in
// sandbox mode.
var SandboxedGroups = []string{GroupFile, GroupProcess, GroupSQL}
