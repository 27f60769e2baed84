package watchlist

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"SmartWorth/internal/model"
)

// Manager guards the tracked-product list and persists every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager loads the state file and adds any seed products not yet tracked.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	m := &Manager{state: state, filePath: filePath}
	for _, name := range seed {
		m.add(name)
	}
	if err := m.save(); err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}
	return m, nil
}

func (m *Manager) indexOf(name string) int {
	for i, p := range m.state.Products {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

func (m *Manager) add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || m.indexOf(name) >= 0 {
		return false
	}
	m.state.Products = append(m.state.Products, model.TrackedProduct{Name: name, AddedAt: time.Now()})
	return true
}

// Add starts tracking name. It reports false when the name is empty or already tracked.
func (m *Manager) Add(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.add(name) {
		return false, nil
	}
	return true, m.save()
}

// Remove stops tracking name. It reports false when the name was not tracked.
func (m *Manager) Remove(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(strings.TrimSpace(name))
	if i < 0 {
		return false, nil
	}
	m.state.Products = append(m.state.Products[:i], m.state.Products[i+1:]...)
	return true, m.save()
}

// List returns a copy of the tracked products in insertion order.
func (m *Manager) List() []model.TrackedProduct {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TrackedProduct(nil), m.state.Products...)
}

// MarkAnalyzed stores the latest outcome for a tracked product.
// Untracked names are ignored.
func (m *Manager) MarkAnalyzed(res *model.AnalysisResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(res.Product.Name)
	if i < 0 {
		return
	}
	p := &m.state.Products[i]
	p.LastAnalyzedAt = res.AnalyzedAt
	if p.LastAnalyzedAt.IsZero() {
		p.LastAnalyzedAt = time.Now()
	}
	p.LastScore = res.ValueScore
	p.LastTrend = res.Trend
	p.LastAvgPrice = res.Product.AvgPrice

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save watchlist: %v", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
