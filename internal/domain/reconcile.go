package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field names a logical value of an hourly record.
type Field string

const (
	FieldTemperature    Field = "temperature"
	FieldHumidity       Field = "humidity"
	FieldWindSpeed      Field = "wind_speed"
	FieldWindDirection  Field = "wind_direction"
	FieldPressure       Field = "pressure"
	FieldPrecipitation  Field = "precipitation"
	FieldSolarRadiation Field = "solar_radiation"
	FieldVisibility     Field = "visibility"
	FieldUVIndex        Field = "uv_index"

	FieldDate        Field = "date"
	FieldDatetime    Field = "datetime"
	FieldDescription Field = "description"
	FieldCondition   Field = "condition"
	FieldIcon        Field = "icon"
	FieldSource      Field = "source"
)

// fieldSpec lists the raw keys for a field in priority order and the value
// used when none of them yields a usable value.
type fieldSpec[T any] struct {
	keys []string
	def  T
}

// numericFields is the candidate-key table for numeric fields.
var numericFields = map[Field]fieldSpec[float64]{
	FieldTemperature:    {keys: []string{"temperature", "temp"}},
	FieldHumidity:       {keys: []string{"humidity"}},
	FieldWindSpeed:      {keys: []string{"wind_speed", "windSpeed"}},
	FieldWindDirection:  {keys: []string{"wind_direction", "windDirection"}},
	FieldPressure:       {keys: []string{"pressure"}, def: 1013},
	FieldPrecipitation:  {keys: []string{"precipitation"}},
	FieldSolarRadiation: {keys: []string{"solar_radiation", "CLRSKY_SFC_SW_DWN"}},
	FieldVisibility:     {keys: []string{"visibility"}, def: 10},
	FieldUVIndex:        {keys: []string{"uv_index", "uvIndex"}},
}

// stringFields is the candidate-key table for string fields.
var stringFields = map[Field]fieldSpec[string]{
	FieldDate:        {keys: []string{"date"}},
	FieldDatetime:    {keys: []string{"datetime"}},
	FieldDescription: {keys: []string{"description"}},
	FieldCondition:   {keys: []string{"condition"}},
	FieldIcon:        {keys: []string{"icon"}},
	FieldSource:      {keys: []string{"source"}, def: "api"},
}

// Number resolves a numeric field. The first candidate key holding a non-null
// value decides the result; if that value is not numeric the field default is
// returned.
func (r RawHourRecord) Number(f Field) float64 {
	fd := numericFields[f]
	v, ok := r.lookup(fd.keys)
	if !ok {
		return fd.def
	}
	n, ok := toNumber(v)
	if !ok {
		return fd.def
	}
	return n
}

// LookupNumber is like Number but reports whether a usable value was present
// instead of substituting the default.
func (r RawHourRecord) LookupNumber(f Field) (float64, bool) {
	v, ok := r.lookup(numericFields[f].keys)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

// Text resolves a string field. Empty and non-string values count as absent.
func (r RawHourRecord) Text(f Field) string {
	fd := stringFields[f]
	for _, key := range fd.keys {
		if s, ok := r[key].(string); ok && s != "" {
			return s
		}
	}
	return fd.def
}

// Hour resolves the hour of day. An explicit "hour" key wins even when it
// holds null (which reads as 0); otherwise the hour is parsed from datetime.
// Values outside 0–23 resolve to 0.
func (r RawHourRecord) Hour() int {
	if v, ok := r["hour"]; ok {
		n, ok := toNumber(v)
		if !ok {
			return 0
		}
		return validHour(int(math.Trunc(n)))
	}
	return hourFromDatetime(r.Text(FieldDatetime))
}

func (r RawHourRecord) lookup(keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// hourFromDatetime reads the leading digits of the time component of an
// ISO-8601 string, e.g. "2024-06-01T07:30:00" → 7.
func hourFromDatetime(datetime string) int {
	_, timePart, found := strings.Cut(datetime, "T")
	if !found {
		return 0
	}
	hh, _, _ := strings.Cut(timePart, ":")

	end := 0
	for end < len(hh) && end < 2 && hh[end] >= '0' && hh[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	h, err := strconv.Atoi(hh[:end])
	if err != nil {
		return 0
	}
	return validHour(h)
}

func validHour(h int) int {
	if h < 0 || h > 23 {
		return 0
	}
	return h
}

// toNumber coerces a decoded JSON value to a finite float64.
func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	case bool:
		if x {
			n = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
