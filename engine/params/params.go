package params

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a parameter file decodes but holds out-of-range values.
var ErrInvalid = errors.New("invalid parameters")

// ContactShadow holds the tunables of the contact shadow under the occluder.
type ContactShadow struct {
	Blur           float32 `toml:"blur"`
	BlurSecondPass float32 `toml:"blur_second_pass"`
	Darkness       float32 `toml:"darkness"`
	Opacity        float32 `toml:"opacity"`
}

// SoftShadow holds the tunables of the soft shadow floor.
type SoftShadow struct {
	Quality int     `toml:"quality"`
	Blur    float32 `toml:"blur"`
	Opacity float32 `toml:"opacity"`
}

// Reflection holds the tunables of the mirror fade.
type Reflection struct {
	StartOpacity   float32 `toml:"start_opacity"`
	DistanceFactor float32 `toml:"distance_factor"`
}

// Params is the live-editable state of the demo. It is copied by value each frame.
type Params struct {
	Background    string        `toml:"background"`
	ContactShadow ContactShadow `toml:"contact_shadow"`
	SoftShadow    SoftShadow    `toml:"soft_shadow"`
	Reflection    Reflection    `toml:"reflection"`
}

// Default returns the values the demo starts with when no file overrides them.
func Default() Params {
	return Params{
		Background: "#070758",
		ContactShadow: ContactShadow{
			Blur:           4,
			BlurSecondPass: 1.6,
			Darkness:       1,
			Opacity:        1,
		},
		SoftShadow: SoftShadow{
			Quality: 10,
			Blur:    0.3,
			Opacity: 0.5,
		},
		Reflection: Reflection{
			StartOpacity:   0.4,
			DistanceFactor: 1.5,
		},
	}
}

// Decode parses a TOML document on top of the defaults, so a file only needs the keys it
// changes. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Params: the decoded parameters
//   - error: a decode error, or ErrInvalid if a value is out of range
func Decode(data []byte) (Params, error) {
	p := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Params{}, fmt.Errorf("failed to decode parameters: %s", strict.String())
		}
		return Params{}, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Load reads and decodes a parameter file.
//
// Parameters:
//   - path: the TOML file
//
// Returns:
//   - Params: the decoded parameters
//   - error: a read or decode error
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read parameters: %w", err)
	}
	return Decode(data)
}

// Encode renders p as TOML.
func Encode(p Params) ([]byte, error) {
	data, err := toml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	return data, nil
}

// Validate reports the first out-of-range value.
func (p Params) Validate() error {
	switch {
	case p.ContactShadow.Blur < 0 || p.ContactShadow.BlurSecondPass < 0:
		return fmt.Errorf("contact shadow blur must not be negative: %w", ErrInvalid)
	case p.ContactShadow.Opacity < 0 || p.ContactShadow.Opacity > 1:
		return fmt.Errorf("contact shadow opacity %g outside [0, 1]: %w", p.ContactShadow.Opacity, ErrInvalid)
	case p.SoftShadow.Quality < 1:
		return fmt.Errorf("soft shadow quality %d below 1: %w", p.SoftShadow.Quality, ErrInvalid)
	case p.SoftShadow.Blur < 0:
		return fmt.Errorf("soft shadow blur must not be negative: %w", ErrInvalid)
	case p.SoftShadow.Opacity < 0 || p.SoftShadow.Opacity > 1:
		return fmt.Errorf("soft shadow opacity %g outside [0, 1]: %w", p.SoftShadow.Opacity, ErrInvalid)
	}
	if _, err := common.ParseHex(p.Background); err != nil {
		return fmt.Errorf("background %q: %w", p.Background, errors.Join(ErrInvalid, err))
	}
	return nil
}

// BackgroundColor parses the background hex string.
func (p Params) BackgroundColor() common.Color {
	c, err := common.ParseHex(p.Background)
	if err != nil {
		return common.Black
	}
	return c
}
