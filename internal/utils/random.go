package utils

import (
	"fmt"
	"math/rand"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

var firstNames = []string{
	"Javier", "Carmen", "Miguel", "Lucía", "Antonio", "María", "David", "Laura",
	"Sergio", "Elena", "Pablo", "Marta", "Raúl", "Sara", "Alberto", "Nuria",
	"Fernando", "Cristina", "Óscar", "Beatriz",
}

var lastNames = []string{
	"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Fernández",
	"Díaz", "Ruiz", "Moreno", "Jiménez", "Álvarez", "Romero", "Navarro",
	"Torres", "Vega",
}

func GenerateRandomFullName() (string, string) {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))] + " " + lastNames[rand.Intn(len(lastNames))]
	return first, last
}

// GenerateRandomBadge returns a well-formed 6-digit NIP. Uniqueness is up to
// the caller (the store rejects collisions).
func GenerateRandomBadge() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func GenerateRandomSection() domain.Section {
	sections := domain.Sections()
	return sections[rand.Intn(len(sections))]
}

func GenerateRandomGroup() domain.Group {
	groups := domain.Groups()
	return groups[rand.Intn(len(groups))]
}

var phonePrefixes = []string{"600", "610", "620", "650", "660", "670"}

func GenerateRandomPhone() string {
	return phonePrefixes[rand.Intn(len(phonePrefixes))] + fmt.Sprintf("%06d", rand.Intn(1000000))
}

func GenerateRandomAgent(emailDomain string) *domain.Agent {
	first, last := GenerateRandomFullName()
	badge := GenerateRandomBadge()

	return &domain.Agent{
		FirstName: first,
		LastName:  last,
		Badge:     badge,
		Section:   GenerateRandomSection(),
		Group:     GenerateRandomGroup(),
		Email:     fmt.Sprintf("agente%s@%s", badge, emailDomain),
		Phone:     GenerateRandomPhone(),
		IsMonitor: rand.Intn(5) == 0, // roughly one monitor per five agents
	}
}
