package contentmanager

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validate checks values against the schema: presence of required fields,
// email, url and number format, and select membership. The result is a
// validation.Errors keyed by field, or nil.
func Validate(schema Schema, values Record) error {
	errs := validation.Errors{}
	for _, f := range schema {
		errs[f.Key] = validation.Validate(values.Text(f.Key), rules(f)...)
	}
	return errs.Filter()
}

func rules(f Field) []validation.Rule {
	var rs []validation.Rule
	if f.Required {
		rs = append(rs, validation.Required)
	}
	switch f.Kind {
	case KindEmail:
		rs = append(rs, is.EmailFormat)
	case KindURL:
		rs = append(rs, is.URL)
	case KindNumber:
		rs = append(rs, is.Float)
	case KindSelect:
		allowed := make([]interface{}, len(f.Options))
		for i, o := range f.Options {
			allowed[i] = o.Value
		}
		rs = append(rs, validation.In(allowed...).Error("must be one of the listed options"))
	}
	return rs
}
