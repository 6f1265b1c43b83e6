package descriptor

import (
	"fmt"

	"flatstruct/internal/diagnostic"
	"flatstruct/kind"
)

// Lint checks d against every synthesis rule at once. Synthesis stops at the
// first problem; Lint reports all of them, plus fields no accessor touches
// and methods without tags.
func Lint(d *Descriptor) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if d == nil {
		diags.AddError(diagnostic.CodeInvalidDescriptor, "descriptor is nil", "", "")
		return diags
	}

	name := d.QualifiedName()
	if d.Origin != "" {
		name = d.Origin + ": " + name
	}

	if d.Form != FormContract {
		diags.AddError(diagnostic.CodeInvalidDescriptor,
			fmt.Sprintf("only contracts can be synthesized, this is %s", d.Form), name, "")
	}

	if err := Validate(d); err != nil {
		diags.AddError(diagnostic.CodeInvalidDescriptor, err.Error(), name, "")
	}

	fields := make(map[string]kind.Kind)
	used := make(map[string]bool)

	var order []string

	for _, fd := range d.Fields {
		loc := "field " + fd.Const

		fieldName, ok := fd.Value.(string)
		switch {
		case fd.Value == nil:
			diags.AddError(diagnostic.CodeMalformedField, "name can't be null", name, loc)
			continue
		case !ok:
			diags.AddError(diagnostic.CodeMalformedField,
				fmt.Sprintf("constant should be a string, not %T", fd.Value), name, loc)
			continue
		case fieldName == "":
			diags.AddError(diagnostic.CodeMalformedField, "name can't be empty", name, loc)
			continue
		}

		loc = "field " + fieldName

		if !fd.Type.IsValid() {
			diags.AddError(diagnostic.CodeMalformedField, "type can't be null", name, loc)
			continue
		}

		if _, dup := fields[fieldName]; dup {
			diags.AddError(diagnostic.CodeDuplicateField, "field is declared twice", name, loc)
			continue
		}

		fields[fieldName] = fd.Type
		order = append(order, fieldName)
	}

	check := func(method, field string, declared kind.Kind) {
		loc := "method " + method
		used[field] = true

		registered, ok := fields[field]
		switch {
		case !ok:
			diags.AddError(diagnostic.CodeUnknownField, fmt.Sprintf("field '%s' does not exist", field), name, loc)
		case !declared.IsValid():
			diags.AddError(diagnostic.CodeTypeMismatch,
				fmt.Sprintf("declared type of field '%s' has no field kind; a %s field is declared as %s (kinds are %s)",
					field, registered.Name(), registered.GoType(), kind.Spellings),
				name, loc)
		case registered != declared:
			diags.AddError(diagnostic.CodeTypeMismatch,
				fmt.Sprintf("field '%s' has type %s instead of %s", field, registered.Name(), declared.Name()),
				name, loc)
		}
	}

	for _, md := range d.Methods {
		loc := "method " + md.Name

		if !md.Tagged() {
			diags.AddInfo(diagnostic.CodeUntaggedMethod, "method has no accessor tags and is not generated", name, loc)
			continue
		}

		for _, p := range md.Params {
			if p.Setter != nil {
				check(md.Name, p.Setter.Field, p.Type)
				continue
			}

			if !p.Type.IsValid() {
				diags.AddError(diagnostic.CodeSynthesisFailure,
					fmt.Sprintf("parameter %s has no declarable type", p.Name), name, loc)
			}
		}

		switch {
		case md.Getter != nil:
			check(md.Name, md.Getter.Field, md.Returns)
		case md.Returns != kind.Invalid:
			diags.AddError(diagnostic.CodeSynthesisFailure,
				fmt.Sprintf("method returns %s but has no getter tag", md.Returns.Name()), name, loc)
		}
	}

	for _, f := range order {
		if !used[f] {
			diags.AddWarning(diagnostic.CodeUnusedField, "no accessor reads or writes this field", name, "field "+f)
		}
	}

	return diags
}
