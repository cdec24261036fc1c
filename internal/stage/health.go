package stage

import "fmt"

// Health summarizes whether a stage's external collaborators are usable.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// HealthyWithDetail constructs a ready Health record that still carries a note,
// such as the resolved binary path.
func HealthyWithDetail(name, detail string) Health {
	return Health{Name: name, Ready: true, Detail: detail}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

func (h Health) String() string {
	state := "ready"
	if !h.Ready {
		state = "not ready"
	}
	if h.Detail == "" {
		return fmt.Sprintf("%s: %s", h.Name, state)
	}
	return fmt.Sprintf("%s: %s (%s)", h.Name, state, h.Detail)
}
