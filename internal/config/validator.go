package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Validator checks configuration documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#Config"))
	if !schema.Exists() {
		return nil, fmt.Errorf("schema does not define #Config")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate unifies the JSON document with #Config and requires the result
// to be concrete.
func (v *Validator) Validate(location string, data []byte) error {
	expr, err := cuejson.Extract(location, data)
	if err != nil {
		return oerrors.NewParseError(location, err)
	}

	value := v.ctx.BuildExpr(expr)
	if value.Err() != nil {
		return oerrors.NewParseError(location, value.Err())
	}

	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  cueerrors.Details(err, nil),
			Location: location,
			Hint:     "Each module needs an \"npm\" descriptor and each locale group a \"languages\" list.",
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrConfigParse, err),
		}
	}
	return nil
}
