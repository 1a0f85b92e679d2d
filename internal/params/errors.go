package params

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownParameter is returned when a name is not registered in the graph
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrDuplicateParameter is returned by Build when two parameters share a name
	ErrDuplicateParameter = errors.New("duplicate parameter")
	// ErrDependencyCycle is returned by Build when a derived parameter depends on itself
	ErrDependencyCycle = errors.New("dependency cycle")
)

// UnknownError names the parameter that could not be found
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownParameter, e.Name)
}

func (e *UnknownError) Unwrap() error {
	return ErrUnknownParameter
}

// CycleError lists the parameters that could not be ordered
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s through %s", ErrDependencyCycle, strings.Join(e.Names, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrDependencyCycle
}
