package behaviour

import "fmt"

// PlayerBehaviour is driven by the host loop: Start once before the first
// frame, then Update every frame.
type PlayerBehaviour interface {
	Start() error
	Update()
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour PlayerBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour PlayerBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			// Keep order, later behaviours may depend on earlier ones.
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

// UpdateAll starts behaviours that have not started yet and updates all of
// them in insertion order. A failing Start aborts the frame; the behaviour is
// retried on the next call.
func (m *BehaviourManager) UpdateAll() error {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			if err := m.behaviours[i].Behaviour.Start(); err != nil {
				return fmt.Errorf("start behaviour %d: %w", i, err)
			}
			m.behaviours[i].started = true
		}
		m.behaviours[i].Behaviour.Update()
	}
	return nil
}
