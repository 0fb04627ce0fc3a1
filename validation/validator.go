// Package validation revisa cuerpos JSON contra reglas declarativas por campo
// y produce mensajes legibles en el orden en que se declararon las reglas.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors es la lista de mensajes de una validación fallida
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, " ")
}

// FieldRules son las reglas de un campo, en orden
type FieldRules struct {
	Name  string
	Rules []string
}

// Field declara las reglas de un campo con la misma sintaxis de las etiquetas
// validate: "required,string,max=100".
func Field(name, rules string) FieldRules {
	parts := strings.Split(rules, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return FieldRules{Name: name, Rules: out}
}

// LookupFunc resuelve una regla que necesita consultar el almacenamiento,
// como unique o exists. Devuelve true cuando el valor es aceptable.
type LookupFunc func(ctx context.Context, param string, value interface{}) (bool, error)

type lookup struct {
	message string
	fn      LookupFunc
}

// Validator evalúa reglas de campo. Es seguro para uso concurrente una vez
// registradas las reglas de consulta.
type Validator struct {
	checker *validator.Validate
	lookups map[string]lookup
}

// New crea un Validator sin reglas de consulta
func New() *Validator {
	return &Validator{
		checker: validator.New(),
		lookups: make(map[string]lookup),
	}
}

// RegisterLookup agrega una regla de consulta. En message, ":attribute" se
// reemplaza por el nombre del campo.
func (v *Validator) RegisterLookup(name, message string, fn LookupFunc) {
	v.lookups[name] = lookup{message: message, fn: fn}
}

// Validate valida input y devuelve Errors si alguna regla falla. Cualquier
// otro error viene de una regla de consulta o de una regla mal declarada.
// Sin reglas de consulta no tiene efectos secundarios.
func (v *Validator) Validate(ctx context.Context, input map[string]interface{}, fields ...FieldRules) error {
	errs, err := v.validate(ctx, input, fields)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) validate(ctx context.Context, input map[string]interface{}, fields []FieldRules) (Errors, error) {
	var errs Errors
	for _, f := range fields {
		value, present := input[f.Name]
		attr := attribute(f.Name)

		if isBlank(value, present) {
			if hasRule(f.Rules, "required") {
				errs = append(errs, fmt.Sprintf(msgRequired, attr))
			}
			continue
		}

		numeric := hasRule(f.Rules, "numeric")
		for _, rule := range f.Rules {
			name, param, _ := strings.Cut(rule, "=")
			var msg string
			switch name {
			case "required":
				continue
			case "string":
				if _, ok := value.(string); !ok {
					msg = fmt.Sprintf(msgString, attr)
				}
			case "numeric":
				if !v.isNumeric(value) {
					msg = fmt.Sprintf(msgNumeric, attr)
				}
			case "email":
				s, ok := value.(string)
				if !ok || v.checker.Var(s, "email") != nil {
					msg = fmt.Sprintf(msgEmail, attr)
				}
			case "min", "max":
				msg = v.checkSize(name, param, attr, value, numeric)
			default:
				l, ok := v.lookups[name]
				if !ok {
					return nil, fmt.Errorf("unknown validation rule %q on field %q", name, f.Name)
				}
				ok, err := l.fn(ctx, param, value)
				if err != nil {
					return nil, fmt.Errorf("rule %s on %s: %w", name, f.Name, err)
				}
				if !ok {
					msg = strings.ReplaceAll(l.message, ":attribute", attr)
				}
			}
			if msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return errs, nil
}

// checkSize aplica min/max sobre el valor numérico cuando el campo es numeric,
// y sobre la cantidad de caracteres en cualquier otro caso.
func (v *Validator) checkSize(name, param, attr string, value interface{}, numeric bool) string {
	if numeric {
		if n, ok := toFloat(value); ok {
			if v.checker.Var(n, name+"="+param) != nil {
				if name == "min" {
					return fmt.Sprintf(msgMinNumeric, attr, param)
				}
				return fmt.Sprintf(msgMaxNumeric, attr, param)
			}
			return ""
		}
	}
	if v.checker.Var(stringValue(value), name+"="+param) != nil {
		if name == "min" {
			return fmt.Sprintf(msgMinString, attr, param)
		}
		return fmt.Sprintf(msgMaxString, attr, param)
	}
	return ""
}

func (v *Validator) isNumeric(value interface{}) bool {
	switch val := value.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return true
	case string:
		return v.checker.Var(strings.TrimSpace(val), "numeric") == nil
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch val := value.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func stringValue(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func isBlank(value interface{}, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name || strings.HasPrefix(r, name+"=") {
			return true
		}
	}
	return false
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
