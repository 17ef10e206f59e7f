package interval

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// String formats a as "[lo, hi]" with the shortest decimals that parse back
// to the same bounds.
func (a Interval) String() string {
	return "[" + strconv.FormatFloat(a.lo, 'g', -1, 64) + ", " + strconv.FormatFloat(a.hi, 'g', -1, 64) + "]"
}

// HexString formats a with exact hexadecimal floating-point bounds.
func (a Interval) HexString() string {
	return "[" + strconv.FormatFloat(a.lo, 'x', -1, 64) + ", " + strconv.FormatFloat(a.hi, 'x', -1, 64) + "]"
}

func bitImage(x float64) string {
	b := math.Float64bits(x)
	return fmt.Sprintf("%01b:%011b:%052b", b>>63, (b>>52)&0x7ff, b&(1<<52-1))
}

// BitString formats a with the sign:exponent:mantissa bit image of each bound.
func (a Interval) BitString() string {
	return "[" + bitImage(a.lo) + ", " + bitImage(a.hi) + "]"
}

func splitBounds(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		// A bare number denotes a degenerate interval.
		if s == "" || strings.ContainsAny(s, "[],") {
			return "", "", fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		return s, s, nil
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// directed converts decimal text to the nearest double, then moves it one
// ulp outward when the decimal value lies beyond it in the given direction.
func directed(text string, lower bool) (float64, error) {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
	}
	if math.IsInf(x, 0) {
		if lower && x > 0 {
			return math.MaxFloat64, nil
		}
		if !lower && x < 0 {
			return -math.MaxFloat64, nil
		}
		return x, nil
	}
	exact, ok := new(big.Rat).SetString(text)
	if !ok {
		return x, nil
	}
	cmp := exact.Cmp(new(big.Rat).SetFloat64(x))
	switch {
	case lower && cmp < 0:
		return math.Nextafter(x, math.Inf(-1)), nil
	case !lower && cmp > 0:
		return math.Nextafter(x, math.Inf(1)), nil
	}
	return x, nil
}

// ParseDecimal reads "[lo, hi]" or a single number and returns the smallest
// double interval containing the decimal values.
func ParseDecimal(s string) (Interval, error) {
	ls, hs, err := splitBounds(s)
	if err != nil {
		return Interval{}, err
	}
	lo, err := directed(ls, true)
	if err != nil {
		return Interval{}, err
	}
	hi, err := directed(hs, false)
	if err != nil {
		return Interval{}, err
	}
	return New(lo, hi)
}

// ParseHex reads the output of HexString exactly.
func ParseHex(s string) (Interval, error) {
	ls, hs, err := splitBounds(s)
	if err != nil {
		return Interval{}, err
	}
	lo, err := strconv.ParseFloat(ls, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrSyntax, ls)
	}
	hi, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrSyntax, hs)
	}
	return New(lo, hi)
}

func parseBitImage(s string) (float64, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 || len(fields[0]) != 1 || len(fields[1]) != 11 || len(fields[2]) != 52 {
		return 0, fmt.Errorf("%w: bit image %q", ErrSyntax, s)
	}
	b, err := strconv.ParseUint(strings.Join(fields, ""), 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bit image %q", ErrSyntax, s)
	}
	return math.Float64frombits(b), nil
}

// ParseBit reads the output of BitString exactly.
func ParseBit(s string) (Interval, error) {
	ls, hs, err := splitBounds(s)
	if err != nil {
		return Interval{}, err
	}
	lo, err := parseBitImage(ls)
	if err != nil {
		return Interval{}, err
	}
	hi, err := parseBitImage(hs)
	if err != nil {
		return Interval{}, err
	}
	return New(lo, hi)
}

// Parse detects the format of s: bit images, hexadecimal or decimal.
func Parse(s string) (Interval, error) {
	switch {
	case strings.Contains(s, ":"):
		return ParseBit(s)
	case strings.Contains(strings.ToLower(s), "0x"):
		return ParseHex(s)
	default:
		return ParseDecimal(s)
	}
}

// MarshalBinary encodes a as 16 bytes: lo then hi, little-endian IEEE-754.
func (a Interval) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(a.lo))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(a.hi))
	return buf, nil
}

func (a *Interval) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("%w: binary interval needs 16 bytes, got %d", ErrSyntax, len(data))
	}
	iv, err := New(
		math.Float64frombits(binary.LittleEndian.Uint64(data[0:8])),
		math.Float64frombits(binary.LittleEndian.Uint64(data[8:16])),
	)
	if err != nil {
		return err
	}
	*a = iv
	return nil
}

// MarshalText uses the exact hexadecimal form.
func (a Interval) MarshalText() ([]byte, error) {
	return []byte(a.HexString()), nil
}

func (a *Interval) UnmarshalText(text []byte) error {
	iv, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = iv
	return nil
}
