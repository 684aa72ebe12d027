package speech

import "github.com/alnah/go-codestory/internal/lang"

// Params tunes an utterance. Zero fields mean "use the default".
type Params struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultVolume applies when no volume is given.
const DefaultVolume = 1.0

var languageParams = map[string]Params{
	lang.Hindi:    {Rate: 0.8, Pitch: 1.1},
	lang.Telugu:   {Rate: 0.8, Pitch: 1.0},
	lang.English:  {Rate: 1.0, Pitch: 1.0},
	lang.Hinglish: {Rate: 0.9, Pitch: 1.0},
	lang.Telgish:  {Rate: 0.9, Pitch: 1.0},
}

// DefaultParams returns the reading parameters for a language. Unknown
// languages read like English.
func DefaultParams(code string) Params {
	p, ok := languageParams[lang.Normalize(code)]
	if !ok {
		p = languageParams[lang.English]
	}
	p.Volume = DefaultVolume
	return p
}

// ParamsFor returns the defaults for code with every non-zero field of
// override applied on top.
func ParamsFor(code string, override Params) Params {
	p := DefaultParams(code)
	if override.Rate > 0 {
		p.Rate = override.Rate
	}
	if override.Pitch > 0 {
		p.Pitch = override.Pitch
	}
	if override.Volume > 0 {
		p.Volume = override.Volume
	}
	return p
}
