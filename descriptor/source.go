package descriptor

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"flatstruct/kind"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

const directivePrefix = "//flatstruct:"

// LoadPackages loads Go packages and returns a descriptor for every type
// annotated with //flatstruct:struct, in source order.
// Patterns are standard Go package patterns (e.g., "./examples/shapes").
func LoadPackages(patterns ...string) ([]*Descriptor, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var out []*Descriptor
	for _, pkg := range pkgs {
		ds, err := scanPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		out = append(out, ds...)
	}

	return out, nil
}

type directive struct {
	verb string
	args []string
	pos  token.Pos
}

func directives(groups ...*ast.CommentGroup) []directive {
	var out []directive
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, directivePrefix)
			if !ok {
				continue
			}

			parts := strings.Fields(rest)
			if len(parts) == 0 {
				continue
			}

			out = append(out, directive{verb: parts[0], args: parts[1:], pos: c.Pos()})
		}
	}

	return out
}

type scanner struct {
	pkg    *packages.Package
	order  []*Descriptor
	byName map[string]*Descriptor
	specs  map[string]*ast.TypeSpec
}

func scanPackage(pkg *packages.Package) ([]*Descriptor, error) {
	s := &scanner{
		pkg:    pkg,
		byName: make(map[string]*Descriptor),
		specs:  make(map[string]*ast.TypeSpec),
	}

	// Types first: field directives name their owner.
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				for _, d := range directives(doc, ts.Doc) {
					if d.verb == "struct" {
						s.addType(ts)
						break
					}
				}
			}
		}
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				groups := []*ast.CommentGroup{vs.Doc}
				if len(gd.Specs) == 1 {
					groups = append(groups, gd.Doc)
				}

				for _, d := range directives(groups...) {
					if d.verb != "field" {
						continue
					}

					if err := s.addFields(vs, d); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	for _, d := range s.order {
		if d.Form != FormContract {
			continue
		}

		if err := s.addMethods(d, s.specs[d.Name]); err != nil {
			return nil, err
		}
	}

	return s.order, nil
}

func (s *scanner) addType(ts *ast.TypeSpec) {
	form := FormConcrete
	if _, ok := ts.Type.(*ast.InterfaceType); ok {
		form = FormContract
	}

	d := &Descriptor{
		Namespace:  s.pkg.PkgPath,
		Name:       ts.Name.Name,
		Form:       form,
		Origin:     s.pkg.Fset.Position(ts.Pos()).String(),
		ImportPath: s.pkg.PkgPath,
	}

	s.order = append(s.order, d)
	s.byName[d.Name] = d
	s.specs[d.Name] = ts
}

// addFields handles "//flatstruct:field <Owner> <type> [volatile]".
func (s *scanner) addFields(vs *ast.ValueSpec, d directive) error {
	pos := s.pkg.Fset.Position(d.pos)
	if len(d.args) < 2 {
		return fmt.Errorf("%s: field directive needs an owner and a type", pos)
	}

	owner, ok := s.byName[d.args[0]]
	if !ok {
		return fmt.Errorf("%s: field directive names unknown type %q", pos, d.args[0])
	}

	volatile := false
	for _, flag := range d.args[2:] {
		if flag != "volatile" {
			return fmt.Errorf("%s: unknown field flag %q", pos, flag)
		}
		volatile = true
	}

	for _, ident := range vs.Names {
		c, ok := s.pkg.TypesInfo.Defs[ident].(*types.Const)
		if !ok {
			continue
		}

		owner.Fields = append(owner.Fields, FieldDecl{
			Const:    ident.Name,
			Value:    constValue(c),
			Type:     kind.Parse(d.args[1]),
			Volatile: volatile,
		})
	}

	return nil
}

func constValue(c *types.Const) any {
	if c.Val().Kind() == constant.String {
		return constant.StringVal(c.Val())
	}

	return constant.Val(c.Val())
}

func (s *scanner) addMethods(d *Descriptor, ts *ast.TypeSpec) error {
	iface := ts.Type.(*ast.InterfaceType)

	for _, m := range iface.Methods.List {
		if len(m.Names) == 0 {
			// embedded interface
			continue
		}

		fn, ok := s.pkg.TypesInfo.Defs[m.Names[0]].(*types.Func)
		if !ok {
			continue
		}

		sig := fn.Type().(*types.Signature)
		md := MethodDecl{Name: fn.Name()}

		for i := 0; i < sig.Params().Len(); i++ {
			p := sig.Params().At(i)
			md.Params = append(md.Params, ParamDecl{Name: p.Name(), Type: s.kindOf(p.Type())})
		}

		if sig.Results().Len() == 1 {
			md.Returns = s.kindOf(sig.Results().At(0).Type())
		}

		for _, dir := range directives(m.Doc, m.Comment) {
			if err := s.applyAccessor(&md, dir); err != nil {
				return fmt.Errorf("%s.%s: %w", d.Name, md.Name, err)
			}
		}

		d.Methods = append(d.Methods, md)
	}

	return nil
}

// applyAccessor handles "//flatstruct:get <field> [sync]" and
// "//flatstruct:set <param>=<field> [sync]".
func (s *scanner) applyAccessor(md *MethodDecl, d directive) error {
	if len(d.args) == 0 {
		return fmt.Errorf("%s: %s directive needs an argument", s.pkg.Fset.Position(d.pos), d.verb)
	}

	sync := len(d.args) > 1 && d.args[1] == "sync"

	switch d.verb {
	case "get":
		md.Getter = &Tag{Field: s.fieldName(d.args[0]), Synchronized: sync}

	case "set":
		param, field, ok := strings.Cut(d.args[0], "=")
		if !ok {
			return fmt.Errorf("%s: set directive must be <param>=<field>", s.pkg.Fset.Position(d.pos))
		}

		for i := range md.Params {
			if md.Params[i].Name == param {
				md.Params[i].Setter = &Tag{Field: s.fieldName(field), Synchronized: sync}
				return nil
			}
		}

		return fmt.Errorf("%s: no parameter named %q", s.pkg.Fset.Position(d.pos), param)
	}

	return nil
}

// fieldName resolves a package string constant to its value; anything else is
// taken as a literal field name.
func (s *scanner) fieldName(ref string) string {
	if c, ok := s.pkg.Types.Scope().Lookup(ref).(*types.Const); ok && c.Val().Kind() == constant.String {
		return constant.StringVal(c.Val())
	}

	return ref
}

func (s *scanner) kindOf(t types.Type) kind.Kind {
	return kind.FromGoType(types.TypeString(t, func(p *types.Package) string { return p.Name() }))
}
