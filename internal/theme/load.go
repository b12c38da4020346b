package theme

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// LoadError reports a problem with a CUE theme catalog.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadCatalog compiles the CUE files in dir into a Catalog.
//
// A catalog declares palettes by name, an ordered keyword list and the
// default palette:
//
//	palette: ocean: {bg_start: "#001f3f", bg_mid: "#003366", ...}
//	keywords: [{keyword: "sea", palette: "ocean"}]
//	default: "ocean"
//
// Files may omit the package clause; when present it must agree across
// files. The value is unified with an embedded schema, so malformed colours
// are reported with their source position.
func LoadCatalog(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Field: "dir", Message: err.Error()}
	}
	if !info.IsDir() {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, &LoadError{Field: "dir", Message: err.Error()}
	}
	if len(files) == 0 {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("no .cue files in %s", dir)}
	}
	sort.Strings(files)
	for i, f := range files {
		files[i] = filepath.Base(f)
	}

	ctx := cuecontext.New()
	// File arguments form one instance regardless of package clauses.
	instances := load.Instances(files, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Field: "cue", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return decodeCatalog(ctx, value)
}

// ParseCatalog compiles a single CUE source into a Catalog.
func ParseCatalog(filename string, src []byte) (*Catalog, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return decodeCatalog(ctx, value)
}

func decodeCatalog(ctx *cue.Context, value cue.Value) (*Catalog, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("theme schema: %w", err)
	}

	v := schema.Unify(value)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var palettes []Palette
	iter, err := v.LookupPath(cue.ParsePath("palette")).Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		var p Palette
		if err := iter.Value().Decode(&p); err != nil {
			return nil, formatCUEError(err)
		}
		p.Name = iter.Label()
		palettes = append(palettes, p)
	}
	if len(palettes) == 0 {
		return nil, &LoadError{Field: "palette", Message: "at least one palette is required", Pos: v.Pos()}
	}

	var rules []KeywordRule
	if kv := v.LookupPath(cue.ParsePath("keywords")); kv.Exists() {
		if err := kv.Decode(&rules); err != nil {
			return nil, formatCUEError(err)
		}
	}

	dv := v.LookupPath(cue.ParsePath("default"))
	fallback, err := dv.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c, err := NewCatalog(palettes, rules, fallback)
	if err != nil {
		return nil, &LoadError{Field: "catalog", Message: err.Error(), Pos: dv.Pos()}
	}
	return c, nil
}

func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &LoadError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return &LoadError{Field: "cue", Message: first.Error()}
}
