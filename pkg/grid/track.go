package grid

import (
	"encoding/json"

	"github.com/vadim-stepanov/grid/pkg/errors"
)

// TrackSize is a sizing rule for a single track along the fixed axis:
// either an absolute length or a proportional share of the space left
// after all absolute lengths are subtracted.
type TrackSize struct {
	fraction bool
	value    float64
}

// Fixed returns a track sized to an absolute length.
func Fixed(length float64) TrackSize {
	return TrackSize{value: length}
}

// Fraction returns a track sized to a proportional share of the
// remaining space. A weight of 2 receives twice the space of a weight
// of 1.
func Fraction(weight float64) TrackSize {
	return TrackSize{fraction: true, value: weight}
}

// IsFraction reports whether the track is proportionally sized.
func (t TrackSize) IsFraction() bool { return t.fraction }

// Value returns the absolute length or fraction weight.
func (t TrackSize) Value() float64 { return t.value }

// trackJSON mirrors the wire format: exactly one field is set.
type trackJSON struct {
	Fixed    *float64 `json:"fixed,omitempty"`
	Fraction *float64 `json:"fraction,omitempty"`
}

// MarshalJSON encodes the rule as {"fixed": n} or {"fraction": n}.
func (t TrackSize) MarshalJSON() ([]byte, error) {
	v := t.value
	if t.fraction {
		return json.Marshal(trackJSON{Fraction: &v})
	}
	return json.Marshal(trackJSON{Fixed: &v})
}

// UnmarshalJSON decodes the rule, rejecting documents that set both or
// neither variant.
func (t *TrackSize) UnmarshalJSON(data []byte) error {
	var tj trackJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode track rule")
	}
	switch {
	case tj.Fixed != nil && tj.Fraction != nil:
		return errors.New(errors.ErrCodeInvalidInput, "track rule cannot be both fixed and fraction")
	case tj.Fraction != nil:
		*t = Fraction(*tj.Fraction)
	case tj.Fixed != nil:
		*t = Fixed(*tj.Fixed)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "track rule needs a fixed length or a fraction weight")
	}
	return nil
}

// ResolveTrackSizes converts per-track sizing rules into concrete track
// lengths for a bounding length. Fixed tracks keep their length; the
// remaining space is split among fraction tracks in proportion to their
// weights. Order is preserved: one resolved size per input track.
//
// Fraction tracks whose weights sum to zero would divide by zero and
// fail with DEGENERATE_TRACKS.
func ResolveTrackSizes(tracks []TrackSize, boundingLength float64) ([]float64, error) {
	var totalFixed, totalWeight float64
	for _, t := range tracks {
		if t.fraction {
			totalWeight += t.value
		} else {
			totalFixed += t.value
		}
	}

	hasFraction := false
	for _, t := range tracks {
		if t.fraction {
			hasFraction = true
			break
		}
	}
	if hasFraction && totalWeight == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateTracks,
			"fraction track weights sum to zero")
	}

	var unit float64
	if totalWeight > 0 {
		unit = (boundingLength - totalFixed) / totalWeight
	}

	sizes := make([]float64, len(tracks))
	for i, t := range tracks {
		if t.fraction {
			sizes[i] = t.value * unit
		} else {
			sizes[i] = t.value
		}
	}
	return sizes, nil
}

// prefixSums returns the running totals of sizes: out[i] is the sum of
// sizes[0:i], so out[len(sizes)] is the total length.
func prefixSums(sizes []float64) []float64 {
	out := make([]float64, len(sizes)+1)
	for i, s := range sizes {
		out[i+1] = out[i] + s
	}
	return out
}
