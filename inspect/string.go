package inspect

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/odin-inspect/errors"
)

const errReadingString = "<error reading string>"

// stringSummary renders a {data, len} string as quoted UTF-8 text.
func (ins *Inspector) stringSummary(v Value, depth int) string {
	lenField, ok := v.Field("len")
	if !ok {
		return diagnostic(errors.FieldMissing(errors.PhaseDecode, []string{v.Name()}, v.Type().Name(), "len"))
	}
	dataField, ok := v.Field("data")
	if !ok {
		return diagnostic(errors.FieldMissing(errors.PhaseDecode, []string{v.Name()}, v.Type().Name(), "data"))
	}

	length, err := lenField.Signed(ins.target)
	if err != nil {
		Logger().Debug("string length unreadable", zap.String("name", v.Name()), zap.Error(err))
		return errReadingString
	}
	if length == 0 {
		return `""`
	}

	ptr, err := dataField.Unsigned(ins.target)
	if err != nil {
		Logger().Debug("string data pointer unreadable", zap.String("name", v.Name()), zap.Error(err))
		return errReadingString
	}
	if ptr == 0 {
		// A length without data is inconsistent but observed; show the raw fields.
		return ins.structSummary(v, depth)
	}
	if length < 0 || length > int64(ins.cfg.MaxStringLen) {
		Logger().Debug("string length out of range",
			zap.String("name", v.Name()),
			zap.Int64("len", length))
		return errReadingString
	}

	data, err := ins.target.ReadMemory(ptr, uint64(length))
	if err != nil {
		Logger().Debug("error reading string data",
			zap.String("name", v.Name()),
			zap.Uint64("addr", ptr),
			zap.Int64("len", length),
			zap.Error(err))
		return errReadingString
	}

	text := string(data)
	if !utf8.Valid(data) {
		Logger().Debug("string is not valid UTF-8",
			zap.String("name", v.Name()),
			zap.Error(errors.InvalidUTF8(errors.PhaseDecode, []string{v.Name()}, data)))
		text = strings.ToValidUTF8(text, "�")
	}
	return `"` + text + `"`
}
