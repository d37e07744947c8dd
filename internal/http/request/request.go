// Package request binds and validates the inputs of an HTTP request: path
// parameters, query parameters and the JSON body.
//
// A Binder collects every failure of a request instead of stopping at the
// first one, so a single 422 response can list them all:
//
//	in := request.New(r)
//	id := in.PathInt("student_id", "gt=0,lt=4")
//	if in.Reject(w) {
//		return
//	}
package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

const (
	msgMissing    = "Field required"
	msgIntParsing = "Input should be a valid integer, unable to parse string as an integer"
	msgJSON       = "JSON decode error"
	msgObject     = "Input should be a valid dictionary or object to extract fields from"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves every request.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report body fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Binder reads inputs from one request and records what fails.
type Binder struct {
	r          *http.Request
	query      url.Values
	errs       []response.FieldError
	bodyFailed bool
}

// New returns a Binder for r.
func New(r *http.Request) *Binder {
	return &Binder{r: r, query: r.URL.Query()}
}

func (b *Binder) add(typ string, loc []any, msg string, input any) {
	b.errs = append(b.errs, response.FieldError{Type: typ, Loc: loc, Msg: msg, Input: input})
}

func (b *Binder) failed(loc []any) bool {
	for _, e := range b.errs {
		if reflect.DeepEqual(e.Loc, loc) {
			return true
		}
	}
	return false
}

// PathInt parses the path parameter name as an integer and, when rules is
// not empty, checks it against those validator rules (e.g. "gt=0,lt=4").
func (b *Binder) PathInt(name, rules string) int64 {
	raw := b.r.PathValue(name)
	loc := []any{"path", name}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.add("int_parsing", loc, msgIntParsing, raw)
		return 0
	}
	if rules != "" {
		b.rules(n, rules, loc, raw)
	}
	return n
}

// QueryInt parses the required query parameter name as an integer.
func (b *Binder) QueryInt(name string) int64 {
	loc := []any{"query", name}
	if !b.query.Has(name) {
		b.add("missing", loc, msgMissing, nil)
		return 0
	}

	raw := b.query.Get(name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.add("int_parsing", loc, msgIntParsing, raw)
		return 0
	}
	return n
}

// QueryString returns the optional query parameter name. An empty value
// (?name=) is present; a missing key is not.
func (b *Binder) QueryString(name string) types.Optional[string] {
	if !b.query.Has(name) {
		return types.Optional[string]{}
	}
	return types.Some(b.query.Get(name))
}

// Body reads the request body as a JSON object and returns its raw field
// values. It records a failure and returns nil when the body is empty,
// null, malformed or not an object.
func (b *Binder) Body() map[string]json.RawMessage {
	data, err := io.ReadAll(http.MaxBytesReader(nil, b.r.Body, MaxBodyBytes))
	if err != nil {
		b.bodyFailed = true
		b.add("json_invalid", []any{"body"}, msgJSON, nil)
		return nil
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		b.bodyFailed = true
		b.add("missing", []any{"body"}, msgMissing, nil)
		return nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		b.bodyFailed = true
		var syntaxErr *json.SyntaxError
		offset := int64(0)
		if errors.As(err, &syntaxErr) {
			offset = syntaxErr.Offset
		}
		b.add("json_invalid", []any{"body", offset}, msgJSON, string(data))
		return nil
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		b.bodyFailed = true
		b.add("model_attributes_type", []any{"body"}, msgObject, decoded)
		return nil
	}

	fields := make(map[string]json.RawMessage, len(obj))
	if err := json.Unmarshal(data, &fields); err != nil {
		b.bodyFailed = true
		b.add("json_invalid", []any{"body"}, msgJSON, string(data))
		return nil
	}
	return fields
}

// Field decodes the body field name into T. A field of the wrong JSON type
// is recorded and reported as absent.
func Field[T any](b *Binder, body map[string]json.RawMessage, name string) types.Optional[T] {
	var out types.Optional[T]
	raw, ok := body[name]
	if !ok {
		return out
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		typ, msg := typeError[T]()
		var input any
		_ = json.Unmarshal(raw, &input)
		b.add(typ, []any{"body", name}, msg, input)
		return types.Optional[T]{}
	}
	return out
}

// Struct checks the validator rules on v, a body model, and records each
// failure under ["body", field]. It does nothing when the body itself
// failed, and skips fields that already failed decoding.
func (b *Binder) Struct(v any) {
	if b.bodyFailed {
		return
	}

	err := validate.Struct(v)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		b.add("value_error", []any{"body"}, err.Error(), nil)
		return
	}
	for _, fe := range verrs {
		loc := []any{"body", fe.Field()}
		if b.failed(loc) {
			continue
		}
		typ, msg := ruleError(fe)
		b.add(typ, loc, msg, nil)
	}
}

func (b *Binder) rules(v any, rules string, loc []any, input any) {
	err := validate.Var(v, rules)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		b.add("value_error", loc, err.Error(), input)
		return
	}
	for _, fe := range verrs {
		typ, msg := ruleError(fe)
		b.add(typ, loc, msg, input)
	}
}

// Errors returns the failures recorded so far.
func (b *Binder) Errors() []response.FieldError {
	return b.errs
}

// Reject writes a 422 response listing every recorded failure and reports
// whether it did. Handlers return immediately when it reports true.
func (b *Binder) Reject(w http.ResponseWriter) bool {
	if len(b.errs) == 0 {
		return false
	}
	response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(b.errs))
	return true
}

func ruleError(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "required":
		return "missing", msgMissing
	case "gt":
		return "greater_than", "Input should be greater than " + fe.Param()
	case "gte":
		return "greater_than_equal", "Input should be greater than or equal to " + fe.Param()
	case "lt":
		return "less_than", "Input should be less than " + fe.Param()
	case "lte":
		return "less_than_equal", "Input should be less than or equal to " + fe.Param()
	default:
		return "value_error", fmt.Sprintf("Value error, failed on the '%s' rule", fe.Tag())
	}
}

func typeError[T any]() (string, string) {
	var zero T
	switch any(zero).(type) {
	case string:
		return "string_type", "Input should be a valid string"
	case int, int8, int16, int32, int64:
		return "int_type", "Input should be a valid integer"
	default:
		return "type_error", fmt.Sprintf("Input should be a valid %T", zero)
	}
}
