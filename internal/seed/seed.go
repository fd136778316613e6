package seed

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/booking"
	"github.com/javialvarezdrive/gym-policia-local/internal/config"
	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
	"github.com/javialvarezdrive/gym-policia-local/internal/utils"
)

var demoActivities = []struct {
	Name        string
	Description string
}{
	{"Spinning", "Clase de ciclo indoor de alta intensidad"},
	{"CrossFit", "Entrenamiento funcional de fuerza y resistencia"},
	{"Defensa Personal", "Técnicas de control y reducción"},
	{"Natación", "Sesión de piscina, todos los niveles"},
	{"Boxeo", "Trabajo de saco y sparring ligero"},
}

var demoShifts = []struct {
	Name      string
	StartTime string
	EndTime   string
}{
	{"Mañana", "08:00:00", "14:00:00"},
	{"Tarde", "14:00:00", "20:00:00"},
	{"Noche", "20:00:00", "23:59:59"},
}

// SeedDemoData fills an empty database with a plausible gym: the fixed
// activity and shift catalogs, a random roster, and random sessions with
// attendance over the coming days. Collisions with already-seeded rows are
// skipped, so running it twice is harmless.
func SeedDemoData(ctx context.Context, cfg *config.Config, service *booking.Service) {
	for _, a := range demoActivities {
		if _, err := service.CreateActivity(ctx, a.Name, a.Description); err != nil {
			if errors.Is(err, domain.ErrDuplicateActivityName) {
				continue
			}
			slog.Error("unable to seed activity", "name", a.Name, "error", err)
			return
		}
	}

	shifts, err := service.ListShifts(ctx)
	if err != nil {
		slog.Error("unable to list shifts", "error", err)
		return
	}
	if len(shifts) == 0 {
		for _, s := range demoShifts {
			if _, err := service.CreateShift(ctx, s.Name, s.StartTime, s.EndTime); err != nil {
				slog.Error("unable to seed shift", "name", s.Name, "error", err)
				return
			}
		}
	}

	cnt := 0
	for i := 0; i < cfg.Seed.AgentCount; i++ {
		agent := utils.GenerateRandomAgent(cfg.Email.UserDomain)
		if _, err := service.RegisterAgent(ctx, agent); err != nil {
			if errors.Is(err, domain.ErrDuplicateBadge) {
				// random badge collision, just generate fewer agents
				continue
			}
			slog.Error("unable to seed agent", "badge", agent.Badge, "error", err)
			continue
		}
		cnt++
	}
	slog.Info("agents seeded", slog.Int("count", cnt))

	activities, err := service.ListActivities(ctx)
	if err != nil {
		slog.Error("unable to list activities", "error", err)
		return
	}
	shifts, err = service.ListShifts(ctx)
	if err != nil {
		slog.Error("unable to list shifts", "error", err)
		return
	}
	monitors, err := service.ListAgents(ctx, domain.AgentFilter{MonitorsOnly: true})
	if err != nil {
		slog.Error("unable to list monitors", "error", err)
		return
	}
	agents, err := service.ListAgents(ctx, domain.AgentFilter{})
	if err != nil {
		slog.Error("unable to list agents", "error", err)
		return
	}
	if len(activities) == 0 || len(shifts) == 0 || len(monitors) == 0 || len(agents) == 0 {
		slog.Error("not enough catalog or roster data to seed sessions")
		return
	}

	cnt = 0
	today := time.Now()
	for i := 0; i < cfg.Seed.SessionCount; i++ {
		date := today.AddDate(0, 0, rand.Intn(14))
		shift := shifts[rand.Intn(len(shifts))]
		activity := activities[rand.Intn(len(activities))]
		monitor := monitors[rand.Intn(len(monitors))]

		session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrSlotAlreadyBooked) {
				// the random (date, shift) slot was already taken
				continue
			}
			slog.Error("unable to seed session", "error", err)
			continue
		}
		cnt++

		for j := 0; j < rand.Intn(8); j++ {
			agent := agents[rand.Intn(len(agents))]
			if _, err := service.AddAttendee(ctx, session.ID, agent.ID); err != nil {
				if errors.Is(err, domain.ErrDuplicateAttendance) {
					continue
				}
				slog.Error("unable to seed attendance", "error", err)
			}
		}
	}
	slog.Info("sessions seeded", slog.Int("count", cnt))
}
