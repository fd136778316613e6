package domain

import (
	"time"
)

type Section string

const (
	SectionMotorista Section = "Motorista"
	SectionPatrullas Section = "Patrullas"
	SectionGOA       Section = "GOA"
	SectionAtestados Section = "Atestados"
)

func Sections() []Section {
	return []Section{SectionMotorista, SectionPatrullas, SectionGOA, SectionAtestados}
}

type Group string

const (
	GroupG1 Group = "G-1"
	GroupG2 Group = "G-2"
	GroupG3 Group = "G-3"
)

func Groups() []Group {
	return []Group{GroupG1, GroupG2, GroupG3}
}

// Agent is a staff member. Badge is the 6-digit personnel number (NIP) and is
// immutable once registered. Agents flagged as monitors may lead sessions.
type Agent struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Badge     string    `json:"badge"`
	Section   Section   `json:"section"`
	Group     Group     `json:"group"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsMonitor bool      `json:"isMonitor"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AgentFilter narrows roster listings. Zero value matches everyone.
type AgentFilter struct {
	Sections     []Section
	Groups       []Group
	MonitorsOnly bool
}
