// Package interval implements closed floating-point intervals with outward
// rounding, so every result encloses the exact real result of the operation
// applied to any points of the operands.
//
//   - [Interval]: immutable [lo, hi] value with arithmetic and elementary functions
//   - [Atan2]: angle enclosure of a planar box, including the wrap across the
//     negative real axis
//   - [Vector], [Matrix]: interval linear algebra used by the set representations
//   - text (decimal, hex, bit image) and binary codecs
//
// Operations that are undefined on part of an operand (division by an
// interval containing zero, logarithm of a non-positive interval, the angle
// of a box containing the origin) return an [*Error] instead of a NaN.
package interval
