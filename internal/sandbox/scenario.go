package sandbox

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed scenarios/*.json
var embedded embed.FS

// Scenarios holds the built-in scenario files
var Scenarios fs.FS = mustSub(embedded, "scenarios")

// ErrUnknownScenario is returned by Start for ids with no scenario file.
var ErrUnknownScenario = errors.New("unknown scenario")

// AgentSpec places one agent
type AgentSpec struct {
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Image string `json:"image"`
}

// ResourceSpec describes how resources are scattered
type ResourceSpec struct {
	Count     int     `json:"count"`
	Image     string  `json:"image"`
	Seed      int64   `json:"seed"`
	Threshold float64 `json:"threshold"` // Noise level a cell must exceed
	Scale     float64 `json:"scale"`     // Noise sampling step per cell
}

// Scenario is a world description read from JSON
type Scenario struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	MaxTurns  int          `json:"max_turns"`
	Agents    []AgentSpec  `json:"agents"`
	Resources ResourceSpec `json:"resources"`
}

// LoadScenario reads <id>.json from fsys.
func LoadScenario(fsys fs.FS, id string) (*Scenario, error) {
	if id == "" || !fs.ValidPath(id) || path.Base(id) != id {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}
	data, err := fs.ReadFile(fsys, id+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	} else if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", id, err)
	}

	sc := &Scenario{}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", id, err)
	}
	if sc.ID == "" {
		sc.ID = id
	}
	return sc, sc.validate()
}

func (sc *Scenario) validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("scenario %s: grid %dx%d must be positive", sc.ID, sc.Width, sc.Height)
	}
	if sc.MaxTurns <= 0 {
		return fmt.Errorf("scenario %s: max_turns must be positive", sc.ID)
	}
	for _, a := range sc.Agents {
		if a.X < 0 || a.X >= sc.Width || a.Y < 0 || a.Y >= sc.Height {
			return fmt.Errorf("scenario %s: agent %s at (%d,%d) is off the grid", sc.ID, a.Name, a.X, a.Y)
		}
	}
	if sc.Resources.Count < 0 {
		return fmt.Errorf("scenario %s: resource count %d is negative", sc.ID, sc.Resources.Count)
	}
	if sc.Resources.Scale <= 0 {
		sc.Resources.Scale = 0.1
	}
	return nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
