package detector

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PeerGroupSize is the fixed divisor of the peer aggregate. Absent peers count as zero.
const PeerGroupSize = 4

var (
	ErrInvalidGroup = errors.New("invalid sensor group")
)

// Group maps logical roles to tilt sensor MACs. One role is independent and
// keeps its own calibration authority; the remaining roles are peers that
// always receive identical table updates.
type Group struct {
	name        string
	independent string
	peers       []string
	soil        string
	roles       map[string]string
}

type GroupConfig struct {
	Name        string
	Roles       map[string]string
	Independent string
	SoilMAC     string
}

func NewGroup(cfg GroupConfig) (*Group, error) {
	if len(cfg.Roles) == 0 {
		return nil, fmt.Errorf("%w: no roles configured", ErrInvalidGroup)
	}
	independentMAC, ok := cfg.Roles[cfg.Independent]
	if !ok {
		return nil, fmt.Errorf("%w: independent role %q is not in the role map", ErrInvalidGroup, cfg.Independent)
	}

	roles := make(map[string]string, len(cfg.Roles))
	seen := make(map[string]string, len(cfg.Roles))
	names := make([]string, 0, len(cfg.Roles))
	for role, mac := range cfg.Roles {
		mac = strings.ToUpper(strings.TrimSpace(mac))
		if mac == "" {
			return nil, fmt.Errorf("%w: role %q has no mac", ErrInvalidGroup, role)
		}
		if other, dup := seen[mac]; dup {
			return nil, fmt.Errorf("%w: mac %s assigned to roles %q and %q", ErrInvalidGroup, mac, other, role)
		}
		seen[mac] = role
		roles[role] = mac
		names = append(names, role)
	}
	sort.Strings(names)

	g := &Group{
		name:        cfg.Name,
		independent: strings.ToUpper(strings.TrimSpace(independentMAC)),
		soil:        strings.ToUpper(strings.TrimSpace(cfg.SoilMAC)),
		roles:       roles,
	}
	for _, role := range names {
		if role == cfg.Independent {
			continue
		}
		g.peers = append(g.peers, roles[role])
	}
	if len(g.peers) == 0 || len(g.peers) > PeerGroupSize {
		return nil, fmt.Errorf("%w: need 1 to %d peer roles, got %d", ErrInvalidGroup, PeerGroupSize, len(g.peers))
	}
	return g, nil
}

func (g *Group) Name() string { return g.name }

func (g *Group) IsIndependent(mac string) bool {
	return mac == g.independent
}

func (g *Group) IsPeer(mac string) bool {
	for _, p := range g.peers {
		if p == mac {
			return true
		}
	}
	return false
}

// Peers returns the propagation set ordered by role name.
func (g *Group) Peers() []string {
	out := make([]string, len(g.peers))
	copy(out, g.peers)
	return out
}

func (g *Group) SoilMAC() string { return g.soil }

func (g *Group) Role(mac string) (string, bool) {
	for role, m := range g.roles {
		if m == mac {
			return role, true
		}
	}
	return "", false
}
