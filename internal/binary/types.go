package binary

import (
	"encoding/json"
	"fmt"
)

// InstallationType classifies how an installation came to be known.
type InstallationType int

const (
	// System installations are found by the discovery strategies.
	System InstallationType = iota
	// Custom installations were named explicitly by the user or config.
	Custom
	// Bundled is reserved for an installation shipped alongside the host
	// application. No discovery strategy produces it.
	Bundled
)

func (t InstallationType) String() string {
	switch t {
	case System:
		return "system"
	case Custom:
		return "custom"
	case Bundled:
		return "bundled"
	default:
		return fmt.Sprintf("InstallationType(%d)", int(t))
	}
}

// MarshalJSON encodes the type as its lower-case name.
func (t InstallationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the names MarshalJSON produces.
func (t *InstallationType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []InstallationType{System, Custom, Bundled} {
		if candidate.String() == name {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown installation type %q", name)
}

// Installation is one confirmed-functional location of the tool.
type Installation struct {
	Path    string           `json:"path"`
	Version string           `json:"version,omitempty"`
	Source  string           `json:"source"`
	Type    InstallationType `json:"installation_type"`
}

// HasVersion reports whether the probe extracted a version string.
func (i Installation) HasVersion() bool {
	return i.Version != ""
}

// Candidate is a path proposed by an enumerator before it is probed.
type Candidate struct {
	Path   string
	Source string
	Type   InstallationType
}

// Source tags shared between enumerators and the preference table.
const (
	SourcePATH   = "PATH"
	SourceConfig = "config"
	SourceCustom = "custom"
	SourceCache  = "cache"
)
