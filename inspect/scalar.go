package inspect

import (
	"math"
	"strconv"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
)

// scalar renders a value by its encoding. Values with no scalar encoding
// render as the empty string.
func (ins *Inspector) scalar(v Value) (string, error) {
	if err := v.Err(); err != nil {
		return "", err
	}
	t := v.Type()
	if t == nil {
		return "", nil
	}

	switch t.Encoding() {
	case odininspect.EncodingNone:
		return "", nil
	case odininspect.EncodingSigned:
		n, err := v.Signed(ins.target)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case odininspect.EncodingUnsigned:
		n, err := v.Unsigned(ins.target)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil
	case odininspect.EncodingBool:
		n, err := v.Unsigned(ins.target)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(n != 0), nil
	case odininspect.EncodingRune:
		n, err := v.Unsigned(ins.target)
		if err != nil {
			return "", err
		}
		return strconv.QuoteRune(rune(n)), nil
	case odininspect.EncodingFloat:
		n, err := v.Unsigned(ins.target)
		if err != nil {
			return "", err
		}
		switch t.Size() {
		case 4:
			return strconv.FormatFloat(float64(math.Float32frombits(uint32(n))), 'g', -1, 32), nil
		case 8:
			return strconv.FormatFloat(math.Float64frombits(n), 'g', -1, 64), nil
		}
		return "", errors.LayoutMismatch(errors.PhaseRender, t.Name(), "float of "+strconv.FormatUint(t.Size(), 10)+" bytes")
	}
	return "", errors.Unsupported(errors.PhaseRender, "encoding of "+t.Name())
}
