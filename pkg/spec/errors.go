package spec

import "github.com/rotisserie/eris"

// Error kinds shared by every stage. Wrap them with context and test with eris.Is.
var (
	ErrSchema        = eris.New("schema error")
	ErrLookupMiss    = eris.New("lookup miss")
	ErrParameterMiss = eris.New("parameter miss")
)

func parameterMiss(format string, args ...any) error {
	return eris.Wrapf(ErrParameterMiss, format, args...)
}

func schemaError(format string, args ...any) error {
	return eris.Wrapf(ErrSchema, format, args...)
}
